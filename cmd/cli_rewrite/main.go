package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"interview-stories/internal/config"
	"interview-stories/internal/llm"
	"interview-stories/internal/service"
)

func main() {
	ctx := context.Background()
	reader := bufio.NewReader(os.Stdin)

	_ = godotenv.Load()

	cfg, err := config.LoadLLMConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger := zap.NewExample()
	defer logger.Sync()

	client := llm.NewClient(llm.Options{
		Provider:  cfg.LLMProvider,
		BaseURL:   cfg.LLMBaseURL,
		APIKey:    cfg.LLMAPIKey,
		Model:     cfg.LLMModel,
		MaxTokens: cfg.LLMMaxTokens,
	}, logger)
	rewriteSvc := service.NewRewriteService(logger, client, nil)

	for {
		fmt.Println("===== Interview Story Optimizer =====")
		fmt.Println("[1] Metodo STAR")
		fmt.Println("[2] Resaltar palabras clave")
		fmt.Println("[3] Salir")
		fmt.Print("Selecciona una opcion: ")

		line, err := reader.ReadString('\n')
		if errors.Is(err, io.EOF) && strings.TrimSpace(line) == "" {
			return
		}

		var mode service.RewriteMode
		switch strings.TrimSpace(line) {
		case "1":
			mode = service.RewriteStar
		case "2":
			mode = service.RewriteKeywords
		case "3":
			return
		default:
			fmt.Println("Opcion invalida.")
			continue
		}

		story, err := readStory(reader)
		if err != nil {
			fmt.Printf("Error leyendo historia: %v\n", err)
			continue
		}

		fmt.Println("\nOptimizando, por favor espere...")
		out, err := rewriteSvc.Rewrite(ctx, story, string(mode))
		if err != nil {
			fmt.Printf("Error optimizando historia: %v\n", err)
			continue
		}
		fmt.Printf("\n%s\n\n", out)
	}
}

// readStory lee lineas hasta una linea vacia.
func readStory(reader *bufio.Reader) (string, error) {
	fmt.Println("Pega la historia (linea vacia para terminar):")
	var lines []string
	for {
		line, err := reader.ReadString('\n')
		trimmed := strings.TrimRight(line, "\r\n")
		if strings.TrimSpace(trimmed) == "" {
			if len(lines) > 0 || err != nil {
				break
			}
			continue
		}
		lines = append(lines, trimmed)
		if err != nil {
			break
		}
	}
	if len(lines) == 0 {
		return "", errors.New("historia vacia")
	}
	return strings.Join(lines, "\n"), nil
}
