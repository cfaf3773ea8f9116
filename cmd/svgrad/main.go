// Command svgrad applies a natural-language gradient instruction to an SVG
// document and writes the patched result.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"svgrad/grad"
	"svgrad/internal/llm"
)

const demoSVG = `<svg width="300" height="300" xmlns="http://www.w3.org/2000/svg">
  <rect id="hero" x="50" y="50" width="200" height="100" fill="red"/>
  <circle cx="150" cy="200" r="40" fill="green"/>
  <rect x="20" y="20" width="50" height="50" fill="blue" class="small-box"/>
</svg>`

const demoInstruction = "Apply a diagonal gradient from #123456 to #abcdef to all circles and give the element with id 'hero' a radial gradient from red to white"

func main() {
	inFlag := flag.String("in", "", "input SVG file, '-' for stdin, empty for the builtin demo document")
	outFlag := flag.String("out", "output.svg", "output file, '-' for stdout")
	instructionFlag := flag.String("instruction", demoInstruction, "gradient instruction to apply")
	modelFlag := flag.String("model", "", "model name for the API-backed parser")
	apiURLFlag := flag.String("api-url", "", "OpenAI-compatible chat completions URL")
	flag.Parse()

	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	log.SetOutput(os.Stderr)

	document, err := readInput(*inFlag)
	if err != nil {
		log.Fatalf("read input: %v", err)
	}
	instruction := strings.TrimSpace(*instructionFlag)

	spec, source := resolveSpec(instruction, *modelFlag, *apiURLFlag)
	log.Printf("PARSE source=%s steps=%d", source, len(spec.Steps))

	patched := grad.Apply(document, spec)
	report := grad.Validate(patched)
	if report.Valid {
		log.Printf("CHECK ok")
	} else {
		for _, e := range report.Errors {
			log.Printf("CHECK %s", e)
		}
	}

	if err := writeOutput(*outFlag, patched); err != nil {
		log.Fatalf("write output: %v", err)
	}
	if *outFlag != "-" {
		log.Printf("DONE wrote %s (%d steps, valid=%v)", *outFlag, len(spec.Steps), report.Valid)
	}
}

// resolveSpec tries the model-backed producer when an API key is configured,
// then falls back to the deterministic parser. The parser path never fails.
func resolveSpec(instruction, model, apiURL string) (grad.Specification, string) {
	if key := strings.TrimSpace(os.Getenv("SVGRAD_API_KEY")); key != "" {
		client := llm.NewClient(key, model, apiURL)
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		spec, err := llm.ProduceSpecification(ctx, client, instruction)
		if err == nil {
			return spec, "model"
		}
		log.Printf("PARSE model producer unavailable (%v), using deterministic parser", err)
	}
	res := grad.Parse(instruction)
	for _, note := range res.Notes {
		log.Printf("PARSE %s", note)
	}
	return res.Spec, "parser"
}

func readInput(path string) (string, error) {
	switch path {
	case "":
		return demoSVG, nil
	case "-":
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("stdin: %w", err)
		}
		return string(data), nil
	default:
		data, err := os.ReadFile(path)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
}

func writeOutput(path, content string) error {
	if path == "-" {
		_, err := io.WriteString(os.Stdout, content)
		return err
	}
	return os.WriteFile(path, []byte(content), 0o644)
}
