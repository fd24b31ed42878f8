package intent

// Examples lists sample questions per tool.
func Examples() map[Tool][]string {
	return map[Tool][]string{
		ToolTabular: {
			"Qual o salário líquido da Ana Souza em maio/2025?",
			"Quanto o Bruno recebeu em abril/2025?",
			"Qual o total líquido de Ana Souza no 1º trimestre de 2025?",
			"Qual foi o maior bônus do Bruno e em que mês?",
			"Quanto foi descontado de INSS da Ana em junho de 2025?",
			"Quando foi pago o salário de março/2025 do Bruno Lima?",
			"Quantos funcionários temos?",
			"Qual a média salarial da empresa em 2025?",
		},
		ToolExternal: {
			"Qual é o valor do FGTS?",
			"Como funciona o 13º salário?",
			"O que diz a CLT sobre férias?",
			"Qual a alíquota do INSS?",
		},
		ToolGeneral: {
			"Olá, tudo bem?",
			"O que você pode fazer?",
			"Obrigado!",
		},
	}
}
