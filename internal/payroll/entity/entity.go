package entity

import (
	"slices"
	"sort"
	"strings"
	"unicode"

	"github.com/farxc/folha-assistente/internal/payroll/utils"
)

// Month names can also be first names ("Marco"). As a name they have to be
// capitalised and not followed by a year.
var monthWords = map[string]struct{}{
	"janeiro": {}, "fevereiro": {}, "marco": {}, "abril": {}, "maio": {}, "junho": {},
	"julho": {}, "agosto": {}, "setembro": {}, "outubro": {}, "novembro": {}, "dezembro": {},
}

type employee struct {
	id      string
	idToken string
	name    string
	tokens  []string
}

// Resolver maps free-text employee mentions to employee ids. It is built once
// from the store's id->name map and is safe for concurrent use.
type Resolver struct {
	employees []employee
}

// Match is the outcome of a resolution. IDs is sorted; Mention is the text
// that matched or, when nothing matched, the capitalised phrase that looked
// like a name ("" if none). Ambiguous is set when a single mention matched
// more than one employee. Spans are the byte ranges of text taken by the
// matched mentions.
type Match struct {
	IDs       []string
	Mention   string
	Ambiguous bool
	Spans     [][2]int
}

// tokens [from, to) of the question.
type tokenRange struct {
	from, to int
}

func NewResolver(employees map[string]string) *Resolver {
	r := &Resolver{employees: make([]employee, 0, len(employees))}
	for id, name := range employees {
		tokens := utils.FoldedTokens(name)
		if len(tokens) == 0 {
			continue
		}
		r.employees = append(r.employees, employee{id: id, idToken: idToken(id), name: name, tokens: tokens})
	}
	sort.Slice(r.employees, func(i, j int) bool { return r.employees[i].id < r.employees[j].id })
	return r
}

// Resolve returns the ids of every employee mentioned in text.
func (r *Resolver) Resolve(text string) []string {
	return r.Match(text).IDs
}

func (r *Resolver) Name(id string) string {
	for _, e := range r.employees {
		if e.id == id {
			return e.name
		}
	}
	return ""
}

// Match resolves text position by position. A first name followed by more of
// that employee's name tokens (or the employee id itself) is a full match, and
// full matches at a position win over bare first-name matches there. A first
// name followed by a capitalised word the employee does not carry is not a
// match ("João Silva" vs "João Pereira"). Surnames alone never match.
func (r *Resolver) Match(text string) Match {
	spans := utils.TokenSpans(text)
	orig := make([]string, len(spans))
	folded := make([]string, len(spans))
	for i, sp := range spans {
		orig[i] = text[sp[0]:sp[1]]
		folded[i] = utils.Fold(orig[i])
	}

	chosen := map[string]string{}
	taken := []tokenRange{}
	ambiguous := false
	for i, tok := range folded {
		if isMonth(tok) && !monthAsName(orig, folded, i) {
			continue
		}
		full := map[string]tokenRange{}
		first := map[string]tokenRange{}
		for _, e := range r.employees {
			if e.idToken != "" && tok == e.idToken {
				full[e.id] = tokenRange{i, i + 1}
				continue
			}
			if tok != e.tokens[0] {
				continue
			}
			if n := fullLength(folded[i+1:], e.tokens[1:]); n > 0 {
				full[e.id] = tokenRange{i, i + 1 + n}
				continue
			}
			if i+1 < len(orig) && looksLikeSurname(orig[i+1], folded[i+1]) && !slices.Contains(e.tokens, folded[i+1]) {
				continue
			}
			first[e.id] = tokenRange{i, i + 1}
		}
		if len(full) > 0 {
			first = full
		}
		if len(first) > 1 {
			ambiguous = true
		}
		for id, tr := range first {
			taken = append(taken, tr)
			if _, ok := chosen[id]; !ok {
				chosen[id] = strings.Join(orig[tr.from:tr.to], " ")
			}
		}
	}

	if len(chosen) == 0 {
		return Match{IDs: []string{}, Mention: guessMention(orig, folded)}
	}

	m := Match{IDs: make([]string, 0, len(chosen)), Ambiguous: ambiguous}
	for _, tr := range taken {
		m.Spans = append(m.Spans, [2]int{spans[tr.from][0], spans[tr.to-1][1]})
	}
	mentions := []string{}
	for id, mention := range chosen {
		m.IDs = append(m.IDs, id)
		if !slices.Contains(mentions, mention) {
			mentions = append(mentions, mention)
		}
	}
	sort.Strings(m.IDs)
	sort.Strings(mentions)
	m.Mention = strings.Join(mentions, ", ")
	return m
}

func isMonth(tok string) bool {
	_, ok := monthWords[tok]
	return ok
}

// monthAsName reports whether the month-like token at i reads as a name:
// capitalised and not followed by a year ("Marco" yes, "março/2025" and
// "Março de 2025" no).
func monthAsName(orig, folded []string, i int) bool {
	r := []rune(orig[i])
	if !unicode.IsUpper(r[0]) {
		return false
	}
	next := i + 1
	if next < len(folded) && (folded[next] == "de" || folded[next] == "do") {
		next++
	}
	return next >= len(folded) || !isYear(folded[next])
}

func isYear(tok string) bool {
	if len(tok) != 4 {
		return false
	}
	for _, c := range tok {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// fullLength counts how many leading text tokens belong to rest (the
// employee's name without the first name), skipping particles. It returns 0
// unless at least one non-particle name token was consumed.
func fullLength(text, rest []string) int {
	n, matched := 0, 0
	for _, tok := range text {
		if isParticle(tok) {
			n++
			continue
		}
		if !slices.Contains(rest, tok) {
			break
		}
		n++
		matched = n
	}
	return matched
}

// idToken is the folded id when it can be told apart from numbers in a
// question ("E001" yes, "17" no).
func idToken(id string) string {
	folded := utils.Fold(id)
	if len(folded) < 3 || !strings.ContainsFunc(folded, unicode.IsLetter) || len(utils.Tokens(folded)) != 1 {
		return ""
	}
	return folded
}

func isParticle(tok string) bool {
	switch tok {
	case "da", "de", "do", "das", "dos", "e":
		return true
	}
	return false
}

func looksLikeSurname(orig, folded string) bool {
	if isParticle(folded) || isMonth(folded) {
		return false
	}
	r := []rune(orig)
	if len(r) < 2 || !unicode.IsUpper(r[0]) {
		return false
	}
	// Acronyms such as INSS or CLT.
	return !isUpperWord(r)
}

func isUpperWord(r []rune) bool {
	for _, c := range r {
		if unicode.IsLetter(c) && !unicode.IsUpper(c) {
			return false
		}
	}
	return true
}

// guessMention returns the first run of capitalised words after the opening
// word, which is how employees are named in questions.
func guessMention(orig, folded []string) string {
	run := []string{}
	for i := 1; i < len(orig); i++ {
		if looksLikeSurname(orig[i], folded[i]) {
			run = append(run, orig[i])
			continue
		}
		if len(run) > 0 {
			break
		}
	}
	return strings.Join(run, " ")
}
