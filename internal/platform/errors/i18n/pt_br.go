package i18n

var ptBRCatalog = &Catalog{
	locale: "pt-BR",
	messages: map[Code]string{
		CodeInvalidMode:        "Modo inválido {{.Mode}}: esperado number ou shuffle",
		CodeInvalidVariant:     "Variante de gerador inválida {{.Variant}}",
		CodeEntropyUnavailable: "Fonte de aleatoriedade segura indisponível",
		CodeInvalidRange:       "Mínimo {{.Min}} é maior que o máximo {{.Max}}",
		CodeRangeTooLarge:      "Intervalo de {{.Min}} a {{.Max}} é grande demais para embaralhar (limite {{.Limit}})",
		CodeCommitmentMismatch: "A semente do servidor revelada não corresponde ao hash publicado",
		CodeResultMismatch:     "O resultado reproduzido não corresponde ao resultado registrado",
		CodeSeedNotRevealed:    "A semente do servidor ainda não foi revelada",
	},
}
