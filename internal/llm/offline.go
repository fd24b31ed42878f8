package llm

import (
	"context"

	"github.com/farxc/folha-assistente/internal/payroll/utils"
)

// Offline answers without a language model. It covers greetings, thanks and
// help requests and points everything else at the supported questions.
type Offline struct{}

type reply struct {
	terms []string
	text  string
}

var offlineReplies = []reply{
	{
		terms: []string{"obrigado", "obrigada", "valeu", "agradeco"},
		text:  "Por nada! Se precisar de mais alguma informação sobre a folha de pagamento, é só perguntar.",
	},
	{
		terms: []string{"tchau", "ate logo", "ate mais"},
		text:  "Até logo! Estou à disposição para consultas sobre a folha de pagamento.",
	},
	{
		terms: []string{"ajuda", "help", "o que voce faz", "o que voce sabe", "como usar"},
		text: "Posso consultar a folha de pagamento (por exemplo: \"Qual o salário líquido da Ana Souza em maio/2025?\", " +
			"\"Qual o total do 1º trimestre de 2025?\", \"Quantos funcionários temos?\") e buscar informações sobre " +
			"legislação trabalhista (por exemplo: \"Qual é o valor do FGTS?\").",
	},
	{
		terms: []string{"ola", "oi", "bom dia", "boa tarde", "boa noite", "e ai"},
		text:  "Olá! Sou o assistente de folha de pagamento. Pergunte sobre salários, bônus, descontos de INSS ou legislação trabalhista.",
	},
}

const offlineDefault = "Posso ajudar com consultas sobre a folha de pagamento e com dúvidas de legislação trabalhista. " +
	"Tente, por exemplo: \"Quanto o Bruno recebeu em abril/2025?\""

func (Offline) Converse(ctx context.Context, text string, _ []Message) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	for _, r := range offlineReplies {
		for _, term := range r.terms {
			if utils.ContainsTerm(text, term) {
				return r.text, nil
			}
		}
	}
	return offlineDefault, nil
}
