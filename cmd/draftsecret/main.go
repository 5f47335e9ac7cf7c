package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/makkenzo/wedding-invitation-api/internal/util"
)

func main() {
	length := flag.Int("length", 48, "Secret length in characters")
	flag.Parse()

	secret, err := util.GenerateSecret(*length)
	if err != nil {
		log.Fatalf("Failed to generate draft mode secret: %v", err)
	}

	fmt.Printf("Generated draft mode secret (SAVE THIS securely!):\n%s\n\n", secret)
	fmt.Println("Set it as DRAFT_MODE_SECRET so preview sessions survive restarts.")
}
