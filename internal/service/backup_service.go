package service

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"cardquest/internal/database"
)

// BackupData is the complete game-state backup structure
type BackupData struct {
	Version      string             `json:"version"`
	ExportedAt   time.Time          `json:"exported_at"`
	DatabaseType string             `json:"database_type"`
	Questions    []QuestionBackup   `json:"questions"`
	Answers      []AnswerBackup     `json:"answers"`
	Players      []PlayerBackup     `json:"players"`
	Cards        []CardBackup       `json:"cards"`
	PlayerCards  []PlayerCardBackup `json:"player_cards"`
	Rewards      []RewardBackup     `json:"rewards"`
	Redemptions  []RedemptionBackup `json:"redemptions"`
}

// QuestionBackup represents a question record for backup. Options keep
// their stored JSON encoding.
type QuestionBackup struct {
	ID              int64     `json:"id"`
	Code            string    `json:"code"`
	Text            string    `json:"text"`
	Options         string    `json:"options"`
	CorrectAnswer   string    `json:"correct_answer"`
	ExplainText     string    `json:"explain_text"`
	ExplainImageURL string    `json:"explain_image_url"`
	ExplainLinkURL  string    `json:"explain_link_url"`
	SortOrder       int       `json:"sort_order"`
	CreatedAt       time.Time `json:"created_at"`
}

// AnswerBackup represents one attempt-log row for backup
type AnswerBackup struct {
	ID           int64     `json:"id"`
	PlayerID     string    `json:"player_id"`
	QuestionCode string    `json:"question_code"`
	AnswerText   string    `json:"answer_text"`
	IsCorrect    bool      `json:"is_correct"`
	CreatedAt    time.Time `json:"created_at"`
}

// PlayerBackup represents a player record for backup
type PlayerBackup struct {
	ID        int64     `json:"id"`
	PlayerID  string    `json:"player_id"`
	Score     int       `json:"score"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CardBackup represents a catalog card for backup
type CardBackup struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Rarity       string `json:"rarity"`
	Description  string `json:"description"`
	ImageURL     string `json:"image_url"`
	ThumbnailURL string `json:"thumbnail_url"`
}

// PlayerCardBackup represents an ownership row for backup
type PlayerCardBackup struct {
	PlayerID  string    `json:"player_id"`
	CardID    int64     `json:"card_id"`
	CreatedAt time.Time `json:"created_at"`
}

// RewardBackup represents a reward for backup
type RewardBackup struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// RedemptionBackup represents a granted reward for backup
type RedemptionBackup struct {
	PlayerID       string    `json:"player_id"`
	RewardID       int64     `json:"reward_id"`
	RedemptionCode string    `json:"redemption_code"`
	CreatedAt      time.Time `json:"created_at"`
}

// BackupService handles game-state backup and restore
type BackupService struct {
	db *database.DB
}

// NewBackupService creates a new backup service
func NewBackupService(db *database.DB) *BackupService {
	return &BackupService{db: db}
}

// Export writes a complete backup of the game tables to a file
func (s *BackupService) Export(outputPath string) (*BackupData, error) {
	log.Println("Starting game-state export...")

	backup := &BackupData{
		Version:      "1.0",
		ExportedAt:   time.Now(),
		DatabaseType: "universal",
	}

	if err := s.exportQuestions(backup); err != nil {
		return nil, fmt.Errorf("failed to export questions: %w", err)
	}
	if err := s.exportAnswers(backup); err != nil {
		return nil, fmt.Errorf("failed to export answers: %w", err)
	}
	if err := s.exportPlayers(backup); err != nil {
		return nil, fmt.Errorf("failed to export players: %w", err)
	}
	if err := s.exportCards(backup); err != nil {
		return nil, fmt.Errorf("failed to export cards: %w", err)
	}
	if err := s.exportPlayerCards(backup); err != nil {
		return nil, fmt.Errorf("failed to export player cards: %w", err)
	}
	if err := s.exportRewards(backup); err != nil {
		return nil, fmt.Errorf("failed to export rewards: %w", err)
	}
	if err := s.exportRedemptions(backup); err != nil {
		return nil, fmt.Errorf("failed to export redemptions: %w", err)
	}

	file, err := os.Create(outputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(backup); err != nil {
		return nil, fmt.Errorf("failed to encode backup: %w", err)
	}

	log.Printf("Game state exported successfully to %s", outputPath)
	log.Printf("Exported: %d questions, %d answers, %d players, %d cards, %d owned, %d rewards, %d redemptions",
		len(backup.Questions), len(backup.Answers), len(backup.Players),
		len(backup.Cards), len(backup.PlayerCards), len(backup.Rewards), len(backup.Redemptions))

	return backup, nil
}

// Import restores game state from a backup file
func (s *BackupService) Import(inputPath string) error {
	log.Printf("Starting game-state import from %s...", inputPath)

	file, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("failed to open input file: %w", err)
	}
	defer file.Close()

	return s.ImportFromReader(file)
}

// ImportFromReader restores game state from a backup stream
func (s *BackupService) ImportFromReader(reader io.Reader) error {
	var backup BackupData
	if err := json.NewDecoder(reader).Decode(&backup); err != nil {
		return fmt.Errorf("failed to decode backup: %w", err)
	}

	log.Printf("Backup version: %s, exported at: %s", backup.Version, backup.ExportedAt)

	// Import in dependency order: catalogs before the rows referencing them.
	if err := s.importQuestions(backup.Questions); err != nil {
		return fmt.Errorf("failed to import questions: %w", err)
	}
	if err := s.importPlayers(backup.Players); err != nil {
		return fmt.Errorf("failed to import players: %w", err)
	}
	if err := s.importAnswers(backup.Answers); err != nil {
		return fmt.Errorf("failed to import answers: %w", err)
	}
	if err := s.importCards(backup.Cards); err != nil {
		return fmt.Errorf("failed to import cards: %w", err)
	}
	if err := s.importPlayerCards(backup.PlayerCards); err != nil {
		return fmt.Errorf("failed to import player cards: %w", err)
	}
	if err := s.importRewards(backup.Rewards); err != nil {
		return fmt.Errorf("failed to import rewards: %w", err)
	}
	if err := s.importRedemptions(backup.Redemptions); err != nil {
		return fmt.Errorf("failed to import redemptions: %w", err)
	}

	log.Println("Game-state import completed successfully")
	return nil
}

func (s *BackupService) exportQuestions(backup *BackupData) error {
	query := `SELECT id, code, text, options, correct_answer,
		COALESCE(explain_text, ''), COALESCE(explain_image_url, ''), COALESCE(explain_link_url, ''),
		sort_order, created_at
		FROM questions ORDER BY id`
	rows, err := s.db.Query(query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var q QuestionBackup
		if err := rows.Scan(&q.ID, &q.Code, &q.Text, &q.Options, &q.CorrectAnswer,
			&q.ExplainText, &q.ExplainImageURL, &q.ExplainLinkURL, &q.SortOrder, &q.CreatedAt); err != nil {
			return err
		}
		backup.Questions = append(backup.Questions, q)
	}
	return rows.Err()
}

func (s *BackupService) exportAnswers(backup *BackupData) error {
	query := "SELECT id, player_id, question_code, answer_text, is_correct, created_at FROM answers ORDER BY id"
	rows, err := s.db.Query(query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var a AnswerBackup
		if err := rows.Scan(&a.ID, &a.PlayerID, &a.QuestionCode, &a.AnswerText, &a.IsCorrect, &a.CreatedAt); err != nil {
			return err
		}
		backup.Answers = append(backup.Answers, a)
	}
	return rows.Err()
}

func (s *BackupService) exportPlayers(backup *BackupData) error {
	query := "SELECT id, player_id, score, created_at, updated_at FROM players ORDER BY id"
	rows, err := s.db.Query(query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var p PlayerBackup
		if err := rows.Scan(&p.ID, &p.PlayerID, &p.Score, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return err
		}
		backup.Players = append(backup.Players, p)
	}
	return rows.Err()
}

func (s *BackupService) exportCards(backup *BackupData) error {
	query := `SELECT id, name, COALESCE(rarity, ''), COALESCE(description, ''),
		COALESCE(image_url, ''), COALESCE(thumbnail_url, '') FROM cards ORDER BY id`
	rows, err := s.db.Query(query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var c CardBackup
		if err := rows.Scan(&c.ID, &c.Name, &c.Rarity, &c.Description, &c.ImageURL, &c.ThumbnailURL); err != nil {
			return err
		}
		backup.Cards = append(backup.Cards, c)
	}
	return rows.Err()
}

func (s *BackupService) exportPlayerCards(backup *BackupData) error {
	query := "SELECT player_id, card_id, created_at FROM player_cards ORDER BY player_id, card_id"
	rows, err := s.db.Query(query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var pc PlayerCardBackup
		if err := rows.Scan(&pc.PlayerID, &pc.CardID, &pc.CreatedAt); err != nil {
			return err
		}
		backup.PlayerCards = append(backup.PlayerCards, pc)
	}
	return rows.Err()
}

func (s *BackupService) exportRewards(backup *BackupData) error {
	query := "SELECT id, name, COALESCE(description, '') FROM rewards ORDER BY id"
	rows, err := s.db.Query(query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var r RewardBackup
		if err := rows.Scan(&r.ID, &r.Name, &r.Description); err != nil {
			return err
		}
		backup.Rewards = append(backup.Rewards, r)
	}
	return rows.Err()
}

func (s *BackupService) exportRedemptions(backup *BackupData) error {
	query := "SELECT player_id, reward_id, redemption_code, created_at FROM reward_redemptions ORDER BY id"
	rows, err := s.db.Query(query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var r RedemptionBackup
		if err := rows.Scan(&r.PlayerID, &r.RewardID, &r.RedemptionCode, &r.CreatedAt); err != nil {
			return err
		}
		backup.Redemptions = append(backup.Redemptions, r)
	}
	return rows.Err()
}

func (s *BackupService) importQuestions(questions []QuestionBackup) error {
	for _, q := range questions {
		query := `INSERT INTO questions (code, text, options, correct_answer, explain_text, explain_image_url, explain_link_url, sort_order, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
		if _, err := s.db.Exec(query, q.Code, q.Text, q.Options, q.CorrectAnswer,
			q.ExplainText, q.ExplainImageURL, q.ExplainLinkURL, q.SortOrder, q.CreatedAt); err != nil {
			return fmt.Errorf("question %s: %w", q.Code, err)
		}
	}
	return nil
}

func (s *BackupService) importAnswers(answers []AnswerBackup) error {
	for _, a := range answers {
		query := "INSERT INTO answers (player_id, question_code, answer_text, is_correct, created_at) VALUES (?, ?, ?, ?, ?)"
		if _, err := s.db.Exec(query, a.PlayerID, a.QuestionCode, a.AnswerText, a.IsCorrect, a.CreatedAt); err != nil {
			return fmt.Errorf("answer %d: %w", a.ID, err)
		}
	}
	return nil
}

func (s *BackupService) importPlayers(players []PlayerBackup) error {
	for _, p := range players {
		query := "INSERT INTO players (player_id, score, created_at, updated_at) VALUES (?, ?, ?, ?)"
		if _, err := s.db.Exec(query, p.PlayerID, p.Score, p.CreatedAt, p.UpdatedAt); err != nil {
			return fmt.Errorf("player %s: %w", p.PlayerID, err)
		}
	}
	return nil
}

func (s *BackupService) importCards(cards []CardBackup) error {
	for _, c := range cards {
		query := "INSERT INTO cards (name, rarity, description, image_url, thumbnail_url) VALUES (?, ?, ?, ?, ?)"
		if _, err := s.db.Exec(query, c.Name, c.Rarity, c.Description, c.ImageURL, c.ThumbnailURL); err != nil {
			return fmt.Errorf("card %s: %w", c.Name, err)
		}
	}
	return nil
}

func (s *BackupService) importPlayerCards(playerCards []PlayerCardBackup) error {
	for _, pc := range playerCards {
		query := "INSERT INTO player_cards (player_id, card_id, created_at) VALUES (?, ?, ?)"
		if _, err := s.db.Exec(query, pc.PlayerID, pc.CardID, pc.CreatedAt); err != nil {
			return fmt.Errorf("player card %s/%d: %w", pc.PlayerID, pc.CardID, err)
		}
	}
	return nil
}

func (s *BackupService) importRewards(rewards []RewardBackup) error {
	for _, r := range rewards {
		query := "INSERT INTO rewards (name, description) VALUES (?, ?)"
		if _, err := s.db.Exec(query, r.Name, r.Description); err != nil {
			return fmt.Errorf("reward %s: %w", r.Name, err)
		}
	}
	return nil
}

func (s *BackupService) importRedemptions(redemptions []RedemptionBackup) error {
	for _, r := range redemptions {
		query := "INSERT INTO reward_redemptions (player_id, reward_id, redemption_code, created_at) VALUES (?, ?, ?, ?)"
		if _, err := s.db.Exec(query, r.PlayerID, r.RewardID, r.RedemptionCode, r.CreatedAt); err != nil {
			return fmt.Errorf("redemption %s: %w", r.RedemptionCode, err)
		}
	}
	return nil
}
