package retrieval

import (
	"context"
	"fmt"
	"strings"

	"github.com/farxc/folha-assistente/internal/payroll/evidence"
	"github.com/farxc/folha-assistente/internal/payroll/utils"
)

// Result is what the external collaborator hands back: an answer text and
// the documents it was drawn from.
type Result struct {
	Text    string            `json:"text"`
	Sources []evidence.Source `json:"sources"`
	// Simulated is set when the curated list answered instead of a live search.
	Simulated bool `json:"simulated"`
}

type Item struct {
	Title   string
	Link    string
	Snippet string
}

const maxSnippets = 3

// Terms appended, in order, when the query lacks them, so searches land on
// Brazilian labour law: "legislação trabalhista brasileira CLT".
var enrichmentTerms = []string{"legislação trabalhista", "brasileira", "CLT"}

var workplaceKeywords = []string{
	"trabalho", "trabalhista", "trabalhistas", "clt", "lei", "direito", "direitos", "funcionario",
	"salario", "ferias", "fgts", "inss", "tributo", "encargo", "encargos", "trabalhador",
}

// Enrich appends every enrichment term the query lacks.
func Enrich(query string) string {
	out := strings.TrimSpace(query)
	for _, term := range enrichmentTerms {
		if !utils.ContainsTerm(out, term) {
			out += " " + term
		}
	}
	return out
}

// FilterWorkplace keeps items whose title or snippet mentions a labour topic.
func FilterWorkplace(items []Item) []Item {
	out := []Item{}
	for _, it := range items {
		text := it.Title + " " + it.Snippet
		for _, kw := range workplaceKeywords {
			if utils.ContainsTerm(text, kw) {
				out = append(out, it)
				break
			}
		}
	}
	return out
}

// Compose builds the answer text and source list from search items.
func Compose(items []Item) Result {
	res := Result{Sources: make([]evidence.Source, 0, len(items))}
	var b strings.Builder
	b.WriteString("Segundo as fontes consultadas:")
	for i, it := range items {
		if i < maxSnippets && it.Snippet != "" {
			fmt.Fprintf(&b, "\n- %s (%s)", strings.TrimSpace(it.Snippet), it.Title)
		}
		res.Sources = append(res.Sources, evidence.Source{Title: it.Title, URL: it.Link})
	}
	b.WriteString("\nConsulte as fontes citadas para os detalhes e valores vigentes.")
	res.Text = b.String()
	return res
}

// Curated answers from a fixed list of official pages. Used when no search
// credentials are configured and when a live search returns nothing useful.
type Curated struct{}

var curatedItems = []Item{
	{
		Title:   "Consolidação das Leis do Trabalho (CLT)",
		Link:    "https://www.gov.br/trabalho-e-emprego/pt-br",
		Snippet: "A CLT é a principal legislação trabalhista brasileira, regulamentando as relações de trabalho.",
	},
	{
		Title:   "Direitos Trabalhistas - Ministério do Trabalho",
		Link:    "https://www.gov.br/trabalho-e-emprego/pt-br/assuntos/direitos-trabalhistas",
		Snippet: "Informações sobre direitos trabalhistas, férias, 13º salário, FGTS e outros benefícios.",
	},
	{
		Title:   "Cálculo de Férias - Guia Completo",
		Link:    "https://www.trabalhador.gov.br/ferias",
		Snippet: "Como calcular férias proporcionais, 1/3 constitucional e outros aspectos legais.",
	},
}

func (Curated) Retrieve(ctx context.Context, _ string) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	res := Compose(curatedItems)
	res.Simulated = true
	return res, nil
}
