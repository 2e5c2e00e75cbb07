package database

import (
	"encoding/json"
	"fmt"
	"log"
)

type seedQuestion struct {
	code        string
	text        string
	options     []string
	correct     string
	explainText string
	sortOrder   int
}

// Starter question set. Real deployments manage questions through the admin
// API; these exist so a fresh database is playable.
var seedQuestions = []seedQuestion{
	{"Q1", "Which planet is known as the Red Planet?", []string{"Mars", "Venus", "Jupiter"}, "Mars", "Iron oxide dust gives Mars its reddish color.", 1},
	{"Q2", "What is the capital of Japan?", []string{"Osaka", "Tokyo", "Kyoto"}, "Tokyo", "", 2},
	{"Q3", "How many legs does a spider have?", []string{"6", "8", "10"}, "8", "", 3},
	{"Q4", "Who painted the Mona Lisa?", []string{"Van Gogh", "Picasso", "Da Vinci"}, "Da Vinci", "", 4},
	{"Q5", "What is the largest ocean on Earth?", []string{"Atlantic", "Indian", "Pacific"}, "Pacific", "", 5},
	{"Q6", "What gas do plants absorb from the atmosphere?", []string{"Oxygen", "Carbon Dioxide", "Nitrogen"}, "Carbon Dioxide", "", 6},
}

type seedCard struct {
	name        string
	rarity      string
	description string
}

// Nine cards fill the 3x3 album grid.
var seedCards = []seedCard{
	{"Ember Fox", "common", "A small fox wreathed in harmless flame."},
	{"Tide Turtle", "common", "Carries a rock pool on its back."},
	{"Gale Sparrow", "common", "Faster than the morning wind."},
	{"Moss Golem", "rare", "Wakes once a century to stretch."},
	{"Frost Lynx", "rare", "Its paw prints never melt."},
	{"Storm Koi", "rare", "Swims upstream through thunderclouds."},
	{"Sun Drake", "epic", "Hatches only at the summer solstice."},
	{"Moon Moth", "epic", "Wings map the far side of the moon."},
	{"Star Whale", "legendary", "Seen once, remembered forever."},
}

// SeedGameData populates the question, card, and reward catalogs if they are
// empty. Safe to call on every startup.
func (db *DB) SeedGameData() error {
	if err := db.seedQuestions(); err != nil {
		return fmt.Errorf("failed to seed questions: %w", err)
	}
	if err := db.seedCards(); err != nil {
		return fmt.Errorf("failed to seed cards: %w", err)
	}
	if err := db.seedRewards(); err != nil {
		return fmt.Errorf("failed to seed rewards: %w", err)
	}
	return nil
}

func (db *DB) seedQuestions() error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM questions").Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	for _, q := range seedQuestions {
		options, err := json.Marshal(q.options)
		if err != nil {
			return err
		}
		_, err = db.Exec(`
			INSERT INTO questions (code, text, options, correct_answer, explain_text, sort_order)
			VALUES (?, ?, ?, ?, ?, ?)
		`, q.code, q.text, string(options), q.correct, q.explainText, q.sortOrder)
		if err != nil {
			return err
		}
	}

	log.Printf("Seeded %d questions", len(seedQuestions))
	return nil
}

func (db *DB) seedCards() error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM cards").Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	for _, c := range seedCards {
		_, err := db.Exec(`
			INSERT INTO cards (name, rarity, description, image_url, thumbnail_url)
			VALUES (?, ?, ?, '', '')
		`, c.name, c.rarity, c.description)
		if err != nil {
			return err
		}
	}

	log.Printf("Seeded %d cards", len(seedCards))
	return nil
}

func (db *DB) seedRewards() error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM rewards").Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	rewards := []struct{ name, description string }{
		{"Sticker Pack", "A pack of holographic stickers."},
		{"Bookmark", "A printed bookmark from the front desk."},
		{"Tote Bag", "Canvas tote with the event logo."},
	}
	for _, r := range rewards {
		if _, err := db.Exec("INSERT INTO rewards (name, description) VALUES (?, ?)", r.name, r.description); err != nil {
			return err
		}
	}

	log.Printf("Seeded %d rewards", len(rewards))
	return nil
}
