package flashcard_test

import (
	"context"
	"fmt"
	"strings"

	flashcard "github.com/Moonzhang/go-flashcard"
)

// Example demonstrates generating a deck HTML page from JSON.
// For PDF output, use GeneratePDF (requires Chrome).
func Example() {
	svc, err := flashcard.New()
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	defer svc.Close()

	deck := []byte(`{
		"cards": [
			{"front": "**ephemeral**", "back": "adj. lasting a very short time"}
		],
		"metadata": {"title": "Vocabulary"}
	}`)

	html, err := svc.GenerateHTML(context.Background(), deck)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	if strings.Contains(html, "<strong>ephemeral</strong>") {
		fmt.Println("deck generated successfully")
	}
	// Output: deck generated successfully
}

// Example_validate demonstrates validating a document without rendering it.
func Example_validate() {
	svc, err := flashcard.New()
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	defer svc.Close()

	result := svc.Validate([]byte(`{"cards": []}`))
	fmt.Println(result.Valid)
	fmt.Println(result.Error)
	// Output:
	// false
	// document violates flashcard schema: cards must not be empty
}

// Example_fromCSV demonstrates building a deck from a spreadsheet export.
func Example_fromCSV() {
	csv := "word,translation\nperro,dog\ngato,cat\n"

	extraction, err := flashcard.ExtractCSV(strings.NewReader(csv), flashcard.CSVOptions{
		FrontColumns: []int{0},
		BackColumns:  []int{1},
		HasHeader:    true,
		Title:        "Spanish Animals",
	})
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	fmt.Println(len(extraction.Cards), "cards extracted")

	svc, err := flashcard.New()
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	defer svc.Close()

	html, err := svc.GenerateHTMLFromDocument(context.Background(), extraction.Document("minimal", "light"))
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	if strings.Contains(html, "perro") {
		fmt.Println("deck generated from CSV")
	}
	// Output:
	// 2 cards extracted
	// deck generated from CSV
}
