package intent

import (
	"fmt"
	"os"

	"github.com/farxc/folha-assistente/internal/payroll/utils"
	"gopkg.in/yaml.v3"
)

type Tool string

const (
	ToolTabular  Tool = "tabular"
	ToolExternal Tool = "external"
	ToolGeneral  Tool = "general"
)

// Vocabulary holds the two ordered term sets. Terms are matched as whole
// words on case- and accent-folded text; the tabular set is checked first.
type Vocabulary struct {
	Tabular  []string `yaml:"tabular"`
	External []string `yaml:"external"`
}

func DefaultVocabulary() Vocabulary {
	return Vocabulary{
		Tabular: []string{
			"funcionario", "funcionaria", "funcionarios", "colaborador", "colaboradora", "colaboradores",
			"empregado", "empregados", "salario do", "salario da", "salario de", "salario dos", "salarios",
			"maior salario", "menor salario", "media salarial", "folha", "holerite", "contracheque",
			"liquido", "liquida", "bruto", "bruta", "bonus", "bonificacao", "desconto", "descontos",
			"descontado", "recebi", "recebe", "recebem", "recebeu", "receberam", "ganha", "ganham", "ganhou",
			"quanto ganha", "pago", "paga", "pagamento",
			"competencia", "trimestre", "semestre",
		},
		External: []string{
			"lei", "leis", "legislacao", "clt", "fgts", "inss", "irrf", "aliquota", "aliquotas",
			"imposto", "impostos", "tributo", "encargo", "encargos", "selic", "taxa", "juros",
			"ferias", "13o", "decimo terceiro", "direito", "direitos", "trabalhista", "trabalhistas",
			"como calcular", "como funciona", "o que e", "prazo",
		},
	}
}

// LoadVocabulary reads a YAML override. A list left empty in the file keeps
// the default for that set.
func LoadVocabulary(path string) (Vocabulary, error) {
	v := DefaultVocabulary()
	raw, err := os.ReadFile(path)
	if err != nil {
		return v, fmt.Errorf("read vocabulary %s: %w", path, err)
	}
	var override Vocabulary
	if err := yaml.Unmarshal(raw, &override); err != nil {
		return v, fmt.Errorf("parse vocabulary %s: %w", path, err)
	}
	if len(override.Tabular) > 0 {
		v.Tabular = override.Tabular
	}
	if len(override.External) > 0 {
		v.External = override.External
	}
	return v, nil
}

// Classify applies the first-match-wins rule.
func (v Vocabulary) Classify(text string) Tool {
	tool, _ := v.Explain(text)
	return tool
}

// Explain returns the tool and the term that selected it ("" for general).
func (v Vocabulary) Explain(text string) (Tool, string) {
	if term := firstMatch(text, v.Tabular); term != "" {
		return ToolTabular, term
	}
	if term := firstMatch(text, v.External); term != "" {
		return ToolExternal, term
	}
	return ToolGeneral, ""
}

func firstMatch(text string, terms []string) string {
	for _, term := range terms {
		if utils.ContainsTerm(text, term) {
			return term
		}
	}
	return ""
}
