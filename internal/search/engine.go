package search

import (
	"fmt"

	"github.com/Anish-Chanda/substring-search/internal/rabin"
)

// Engine names, in registry order.
const (
	NameBoyerMoore = "boyer-moore"
	NameKMP        = "kmp"
	NameRabinKarp  = "rabin-karp"
)

// Func is the character-level form shared by every engine.
type Func func(haystack, pattern []rune) (int, error)

// Engine is a named search function.
type Engine struct {
	Name  string
	Index Func
}

func (e Engine) String() string {
	return e.Name
}

// Engines returns Boyer-Moore, KMP and Rabin-Karp, the latter bound to p.
func Engines(p rabin.Params) []Engine {
	return []Engine{
		{Name: NameBoyerMoore, Index: BoyerMoore[rune]},
		{Name: NameKMP, Index: KMP[rune]},
		{Name: NameRabinKarp, Index: func(haystack, pattern []rune) (int, error) {
			return RabinKarpWith(haystack, pattern, p)
		}},
	}
}

// Lookup returns the engine called name.
func Lookup(name string, p rabin.Params) (Engine, error) {
	for _, e := range Engines(p) {
		if e.Name == name {
			return e, nil
		}
	}
	return Engine{}, fmt.Errorf("%w: %q", ErrUnknownEngine, name)
}

// Names lists the registered engine names.
func Names() []string {
	return []string{NameBoyerMoore, NameKMP, NameRabinKarp}
}
