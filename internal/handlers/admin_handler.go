package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"cardquest/internal/models"
	"cardquest/internal/repository"
	"cardquest/internal/service"
)

// AdminHandler serves the management API: operator login plus question and
// card administration.
type AdminHandler struct {
	authService *service.AuthService
	questions   *repository.QuestionRepository
	cards       *repository.CardRepository
	rewards     *repository.RewardRepository
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(authService *service.AuthService, questions *repository.QuestionRepository, cards *repository.CardRepository, rewards *repository.RewardRepository) *AdminHandler {
	return &AdminHandler{
		authService: authService,
		questions:   questions,
		cards:       cards,
		rewards:     rewards,
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

// Login exchanges operator credentials for a bearer token
func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondWithError(w, http.StatusMethodNotAllowed, "Method not allowed", "", nil)
		return
	}

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", "", nil)
		return
	}

	token, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			respondWithError(w, http.StatusUnauthorized, "Invalid email or password", "", nil)
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Login failed", "admin login failed", err)
		return
	}

	respondWithJSON(w, http.StatusOK, loginResponse{Token: token})
}

type questionRequest struct {
	Code            string   `json:"code"`
	Text            string   `json:"text"`
	Options         []string `json:"options"`
	CorrectAnswer   string   `json:"correct_answer"`
	ExplainText     string   `json:"explain_text"`
	ExplainImageURL string   `json:"explain_image_url"`
	ExplainLinkURL  string   `json:"explain_link_url"`
	SortOrder       int      `json:"sort_order"`
}

// Questions lists or creates quiz questions
func (h *AdminHandler) Questions(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		questions, err := h.questions.ListQuestions()
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "Failed to list questions", "question list failed", err)
			return
		}
		respondWithJSON(w, http.StatusOK, questions)

	case http.MethodPost:
		var req questionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid request body", "", nil)
			return
		}
		if err := validateQuestion(req); err != nil {
			respondWithError(w, http.StatusBadRequest, err.Error(), "", nil)
			return
		}

		existing, err := h.questions.GetQuestionByCode(strings.ToUpper(req.Code))
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "Failed to check question", "question lookup failed", err)
			return
		}
		if existing != nil {
			respondWithError(w, http.StatusConflict, "A question with this code already exists", "", nil)
			return
		}

		question, err := h.questions.CreateQuestion(&models.Question{
			Code:            strings.ToUpper(req.Code),
			Text:            req.Text,
			Options:         req.Options,
			CorrectAnswer:   req.CorrectAnswer,
			ExplainText:     req.ExplainText,
			ExplainImageURL: req.ExplainImageURL,
			ExplainLinkURL:  req.ExplainLinkURL,
			SortOrder:       req.SortOrder,
		})
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "Failed to create question", "question create failed", err)
			return
		}
		respondWithJSON(w, http.StatusCreated, question)

	default:
		respondWithError(w, http.StatusMethodNotAllowed, "Method not allowed", "", nil)
	}
}

type cardRequest struct {
	Name         string `json:"name"`
	Rarity       string `json:"rarity"`
	Description  string `json:"description"`
	ImageURL     string `json:"image_url"`
	ThumbnailURL string `json:"thumbnail_url"`
}

// Cards lists or creates catalog cards
func (h *AdminHandler) Cards(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		cards, err := h.cards.ListCards()
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "Failed to list cards", "card list failed", err)
			return
		}
		respondWithJSON(w, http.StatusOK, cards)

	case http.MethodPost:
		var req cardRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid request body", "", nil)
			return
		}
		if strings.TrimSpace(req.Name) == "" {
			respondWithError(w, http.StatusBadRequest, "Card name is required", "", nil)
			return
		}

		existing, err := h.cards.GetCardByName(req.Name)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "Failed to check card", "card lookup failed", err)
			return
		}
		if existing != nil {
			respondWithError(w, http.StatusConflict, "A card with this name already exists", "", nil)
			return
		}

		card, err := h.cards.CreateCard(&models.Card{
			Name:         strings.TrimSpace(req.Name),
			Rarity:       req.Rarity,
			Description:  req.Description,
			ImageURL:     req.ImageURL,
			ThumbnailURL: req.ThumbnailURL,
		})
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "Failed to create card", "card create failed", err)
			return
		}
		respondWithJSON(w, http.StatusCreated, card)

	default:
		respondWithError(w, http.StatusMethodNotAllowed, "Method not allowed", "", nil)
	}
}

// Rewards lists the reward catalog. Rewards are seeded, not managed here.
func (h *AdminHandler) Rewards(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondWithError(w, http.StatusMethodNotAllowed, "Method not allowed", "", nil)
		return
	}

	rewards, err := h.rewards.ListRewards()
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to list rewards", "reward list failed", err)
		return
	}
	respondWithJSON(w, http.StatusOK, rewards)
}

func validateQuestion(req questionRequest) error {
	if strings.TrimSpace(req.Code) == "" {
		return errors.New("question code is required")
	}
	if strings.TrimSpace(req.Text) == "" {
		return errors.New("question text is required")
	}
	if len(req.Options) < 2 {
		return errors.New("at least two options are required")
	}
	for _, option := range req.Options {
		if strings.EqualFold(strings.TrimSpace(option), strings.TrimSpace(req.CorrectAnswer)) {
			return nil
		}
	}
	return errors.New("correct answer must match one of the options")
}
