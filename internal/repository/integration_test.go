package repository

import (
	"os"
	"testing"

	"cardquest/internal/database"
	"cardquest/internal/models"
)

// openTestDB creates a throwaway SQLite database with the full schema.
func openTestDB(t *testing.T) *database.DB {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	dbPath := t.Name() + ".db"
	t.Cleanup(func() { os.Remove(dbPath) })

	db, err := database.Initialize(dbPath)
	if err != nil {
		t.Fatalf("Failed to initialize database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.RunMigrations("../../migrations"); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}
	return db
}

func TestPlayerRepositoryScores(t *testing.T) {
	db := openTestDB(t)
	repo := NewPlayerRepository(db)

	// No record yet
	player, err := repo.GetPlayer("user-1")
	if err != nil {
		t.Fatalf("GetPlayer() error = %v", err)
	}
	if player != nil {
		t.Fatalf("GetPlayer() = %+v, want nil before any credit", player)
	}

	// First credit creates the record
	if err := repo.CreditScore("user-1", 10); err != nil {
		t.Fatalf("CreditScore() error = %v", err)
	}
	player, err = repo.GetPlayer("user-1")
	if err != nil {
		t.Fatalf("GetPlayer() error = %v", err)
	}
	if player == nil || player.Score != 10 {
		t.Fatalf("GetPlayer() = %+v, want score 10", player)
	}

	// Second credit increments
	if err := repo.CreditScore("user-1", 10); err != nil {
		t.Fatalf("CreditScore() error = %v", err)
	}
	player, _ = repo.GetPlayer("user-1")
	if player.Score != 20 {
		t.Errorf("Score = %d, want 20 after two credits", player.Score)
	}

	// Debit within balance succeeds
	ok, err := repo.DebitScore("user-1", 15)
	if err != nil {
		t.Fatalf("DebitScore() error = %v", err)
	}
	if !ok {
		t.Error("DebitScore(15) = false, want true with balance 20")
	}
	player, _ = repo.GetPlayer("user-1")
	if player.Score != 5 {
		t.Errorf("Score = %d, want 5 after debit", player.Score)
	}

	// Debit past the balance is refused and changes nothing
	ok, err = repo.DebitScore("user-1", 10)
	if err != nil {
		t.Fatalf("DebitScore() error = %v", err)
	}
	if ok {
		t.Error("DebitScore(10) = true, want false with balance 5")
	}
	player, _ = repo.GetPlayer("user-1")
	if player.Score != 5 {
		t.Errorf("Score = %d, want 5 after refused debit", player.Score)
	}

	// Debit for an unknown player is refused
	ok, err = repo.DebitScore("ghost", 1)
	if err != nil {
		t.Fatalf("DebitScore() error = %v", err)
	}
	if ok {
		t.Error("DebitScore() = true for unknown player, want false")
	}
}

func TestAnswerRepositoryAttemptLog(t *testing.T) {
	db := openTestDB(t)
	repo := NewAnswerRepository(db)

	attempts := []struct {
		code    string
		answer  string
		correct bool
	}{
		{"Q1", "Osaka", false},
		{"Q1", "Tokyo", true},
		{"Q1", "Tokyo", true},
		{"Q2", "4", true},
	}
	for _, a := range attempts {
		if _, err := repo.RecordAttempt("user-1", a.code, a.answer, a.correct); err != nil {
			t.Fatalf("RecordAttempt() error = %v", err)
		}
	}

	has, err := repo.HasCorrectAttempt("user-1", "Q1")
	if err != nil {
		t.Fatalf("HasCorrectAttempt() error = %v", err)
	}
	if !has {
		t.Error("HasCorrectAttempt(Q1) = false, want true")
	}

	has, err = repo.HasCorrectAttempt("user-1", "Q3")
	if err != nil {
		t.Fatalf("HasCorrectAttempt() error = %v", err)
	}
	if has {
		t.Error("HasCorrectAttempt(Q3) = true, want false")
	}

	// Distinct question codes, not raw correct rows
	count, err := repo.CountCorrectAttempts("user-1")
	if err != nil {
		t.Fatalf("CountCorrectAttempts() error = %v", err)
	}
	if count != 2 {
		t.Errorf("CountCorrectAttempts() = %d, want 2", count)
	}

	log, err := repo.GetAttempts("user-1", 10)
	if err != nil {
		t.Fatalf("GetAttempts() error = %v", err)
	}
	if len(log) != 4 {
		t.Errorf("GetAttempts() returned %d rows, want 4", len(log))
	}
}

func TestCardRepositoryGrantAndDebit(t *testing.T) {
	db := openTestDB(t)
	cards := NewCardRepository(db)
	players := NewPlayerRepository(db)

	card, err := cards.CreateCard(&models.Card{Name: "Ember Fox", Rarity: "common"})
	if err != nil {
		t.Fatalf("CreateCard() error = %v", err)
	}

	// Grant is refused without a sufficient balance, and nothing is written
	ok, err := cards.GrantCardAndDebit("user-1", card.ID, 10)
	if err != nil {
		t.Fatalf("GrantCardAndDebit() error = %v", err)
	}
	if ok {
		t.Error("GrantCardAndDebit() = true with no balance, want false")
	}
	owns, _ := cards.OwnsCard("user-1", card.ID)
	if owns {
		t.Error("OwnsCard() = true after refused grant")
	}

	// With balance, grant and debit land together
	if err := players.CreditScore("user-1", 25); err != nil {
		t.Fatalf("CreditScore() error = %v", err)
	}
	ok, err = cards.GrantCardAndDebit("user-1", card.ID, 10)
	if err != nil {
		t.Fatalf("GrantCardAndDebit() error = %v", err)
	}
	if !ok {
		t.Fatal("GrantCardAndDebit() = false with balance 25, want true")
	}
	owns, _ = cards.OwnsCard("user-1", card.ID)
	if !owns {
		t.Error("OwnsCard() = false after grant")
	}
	player, _ := players.GetPlayer("user-1")
	if player.Score != 15 {
		t.Errorf("Score = %d, want 15 after grant debit", player.Score)
	}

	owned, err := cards.GetOwnedCardIDs("user-1")
	if err != nil {
		t.Fatalf("GetOwnedCardIDs() error = %v", err)
	}
	if !owned[card.ID] {
		t.Error("GetOwnedCardIDs() missing granted card")
	}
}

func TestRewardRepositoryRedeem(t *testing.T) {
	db := openTestDB(t)
	rewards := NewRewardRepository(db)
	players := NewPlayerRepository(db)

	if _, err := db.Exec("INSERT INTO rewards (name, description) VALUES (?, ?)", "Sticker Pack", "A pack of stickers"); err != nil {
		t.Fatalf("insert reward: %v", err)
	}
	list, err := rewards.ListRewards()
	if err != nil {
		t.Fatalf("ListRewards() error = %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("ListRewards() returned %d rewards, want 1", len(list))
	}

	if err := players.CreditScore("user-1", 25); err != nil {
		t.Fatalf("CreditScore() error = %v", err)
	}

	ok, err := rewards.RedeemAndDebit("user-1", list[0].ID, "abc12345", 20)
	if err != nil {
		t.Fatalf("RedeemAndDebit() error = %v", err)
	}
	if !ok {
		t.Fatal("RedeemAndDebit() = false with balance 25, want true")
	}

	player, _ := players.GetPlayer("user-1")
	if player.Score != 5 {
		t.Errorf("Score = %d, want 5 after redeem", player.Score)
	}
	count, err := rewards.CountRedemptions("user-1")
	if err != nil {
		t.Fatalf("CountRedemptions() error = %v", err)
	}
	if count != 1 {
		t.Errorf("CountRedemptions() = %d, want 1", count)
	}

	// Second redeem is refused below the cost, no redemption row written
	ok, err = rewards.RedeemAndDebit("user-1", list[0].ID, "def67890", 20)
	if err != nil {
		t.Fatalf("RedeemAndDebit() error = %v", err)
	}
	if ok {
		t.Error("RedeemAndDebit() = true with balance 5, want false")
	}
	count, _ = rewards.CountRedemptions("user-1")
	if count != 1 {
		t.Errorf("CountRedemptions() = %d, want 1 after refused redeem", count)
	}
}

func TestQuestionRepositoryRoundTrip(t *testing.T) {
	db := openTestDB(t)
	repo := NewQuestionRepository(db)

	created, err := repo.CreateQuestion(&models.Question{
		Code:          "Q1",
		Text:          "What is the capital of Japan?",
		Options:       []string{"Tokyo", "Osaka", "Kyoto"},
		CorrectAnswer: "Tokyo",
		SortOrder:     1,
	})
	if err != nil {
		t.Fatalf("CreateQuestion() error = %v", err)
	}
	if created.ID == 0 {
		t.Error("CreateQuestion() returned zero ID")
	}

	got, err := repo.GetQuestionByCode("Q1")
	if err != nil {
		t.Fatalf("GetQuestionByCode() error = %v", err)
	}
	if got == nil {
		t.Fatal("GetQuestionByCode() = nil, want question")
	}
	if len(got.Options) != 3 || got.Options[0] != "Tokyo" {
		t.Errorf("Options = %v, want stored order preserved", got.Options)
	}

	missing, err := repo.GetQuestionByCode("Q99")
	if err != nil {
		t.Fatalf("GetQuestionByCode() error = %v", err)
	}
	if missing != nil {
		t.Errorf("GetQuestionByCode(Q99) = %+v, want nil", missing)
	}
}
