package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/Anish-Chanda/substring-search/internal/api"
)

var (
	serverAddr = flag.String("addr", "http://localhost:8080", "search server address")
	base       = flag.Int64("base", 0, "Rabin-Karp base (0 keeps the server default)")
	modulus    = flag.Int64("modulus", 0, "Rabin-Karp modulus (0 keeps the server default)")
)

func must(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func search(haystack, pattern, engine string) {
	body, err := json.Marshal(api.SearchRequest{
		Haystack: haystack,
		Pattern:  pattern,
		Engine:   engine,
		Base:     *base,
		Modulus:  *modulus,
	})
	must(err)

	resp, err := http.Post(*serverAddr+"/search", "application/json", bytes.NewReader(body))
	must(err)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(resp.Body)
		fmt.Fprintf(os.Stderr, "search failed (%d): %s\n", resp.StatusCode, msg)
		os.Exit(1)
	}

	var out api.SearchResponse
	must(json.NewDecoder(resp.Body).Decode(&out))
	for _, r := range out.Results {
		fmt.Printf("%-12s %d\n", r.Engine, r.Index)
	}
	if !out.Agree {
		fmt.Fprintln(os.Stderr, "warning: engines disagree")
		os.Exit(2)
	}
}

func engines() {
	resp, err := http.Get(*serverAddr + "/engines")
	must(err)
	defer resp.Body.Close()

	var out struct {
		Engines []string `json:"engines"`
	}
	must(json.NewDecoder(resp.Body).Decode(&out))
	fmt.Println(strings.Join(out.Engines, "\n"))
}

// readArg treats "@path" as a file to read, anything else as the literal text.
func readArg(s string) string {
	if !strings.HasPrefix(s, "@") {
		return s
	}
	b, err := os.ReadFile(s[1:])
	must(err)
	return string(b)
}

func main() {
	flag.Parse()
	if flag.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "usage: client <search|engines> [args]\n")
		os.Exit(1)
	}

	cmd := flag.Arg(0)
	switch cmd {
	case "search":
		if flag.NArg() != 3 && flag.NArg() != 4 {
			fmt.Fprintf(os.Stderr, "usage: client search <haystack|@file> <pattern> [engine]\n")
			os.Exit(1)
		}
		search(readArg(flag.Arg(1)), flag.Arg(2), flag.Arg(3))

	case "engines":
		engines()

	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n", cmd)
		os.Exit(1)
	}
}
