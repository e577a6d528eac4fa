package match

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	mw "github.com/DhavalSuthar-24/crease/internal/middleware"
	"github.com/DhavalSuthar-24/crease/internal/scoring"
	responses "github.com/DhavalSuthar-24/crease/pkg/matchresponse"
)

// MatchController handles match-related HTTP requests
type MatchController struct {
	service *MatchService
}

func NewMatchController(service *MatchService) *MatchController {
	return &MatchController{service: service}
}

// --- DTOs for requests ---

type TeamRequest struct {
	ID      uint   `json:"id" binding:"required"`
	Name    string `json:"name" binding:"required,max=100"`
	Players []uint `json:"players,omitempty" binding:"omitempty,max=15,dive,required"`
}

// CreateMatchRequest defines the request payload for creating a match
type CreateMatchRequest struct {
	TeamA             TeamRequest          `json:"team_a"`
	TeamB             TeamRequest          `json:"team_b"`
	TotalOvers        int                  `json:"total_overs" binding:"required,min=1,max=50"`
	TossWinnerID      uint                 `json:"toss_winner_id" binding:"required"`
	TossDecision      scoring.TossDecision `json:"toss_decision" binding:"required,oneof=bat bowl"`
	MaxPlayersPerSide int                  `json:"max_players_per_side,omitempty" binding:"omitempty,min=2,max=15"`
	Venue             string               `json:"venue,omitempty" binding:"max=255"`
	ScheduledAt       time.Time            `json:"scheduled_at"`
}

// UpdateMatchRequest defines the request payload for updating match details
type UpdateMatchRequest struct {
	Venue       *string    `json:"venue,omitempty" binding:"omitempty,max=255"`
	ScheduledAt *time.Time `json:"scheduled_at,omitempty"`
}

type StartOverRequest struct {
	BowlerID uint `json:"bowler_id" binding:"required"`
}

type UpdateBatsmenRequest struct {
	OnStrikeID  uint `json:"on_strike_id" binding:"required"`
	OffStrikeID uint `json:"off_strike_id" binding:"required,nefield=OnStrikeID"`
}

type AbandonRequest struct {
	Reason string `json:"reason" binding:"max=255"`
}

// BallResponse is returned after a delivery is scored.
type BallResponse struct {
	Match *scoring.Match      `json:"match"`
	Ball  *scoring.BallResult `json:"ball"`
}

// --- Helpers ---

func parseMatchID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		responses.ErrorResponse(c, http.StatusBadRequest, "Invalid match ID")
		return 0, false
	}
	return uint(id), true
}

// respondError maps service and engine errors onto HTTP statuses.
func respondError(c *gin.Context, err error) {
	var verr *scoring.ValidationError
	if errors.As(err, &verr) {
		responses.FieldErrorResponse(c, http.StatusBadRequest, verr.Unwrap().Error(), verr.Fields)
		return
	}
	switch KindOf(err) {
	case scoring.KindNotFound:
		responses.ErrorResponse(c, http.StatusNotFound, "Match not found")
	case scoring.KindConflict:
		responses.ErrorResponse(c, http.StatusConflict, ErrConcurrentUpdate.Error())
	case scoring.KindState:
		if errors.Is(err, scoring.ErrMatchNotActive) {
			responses.ErrorResponse(c, http.StatusUnprocessableEntity, err.Error())
			return
		}
		responses.ErrorResponse(c, http.StatusConflict, err.Error())
	case scoring.KindValidation:
		responses.ErrorResponse(c, http.StatusBadRequest, err.Error())
	default:
		log.Printf("match request %s %s failed: %v", c.Request.Method, c.Request.URL.Path, err)
		responses.ErrorResponse(c, http.StatusInternalServerError, "Internal server error")
	}
}

// --- Handlers ---

// @Summary      Create a match
// @Description  Creates an upcoming match. The toss decides who bats first.
// @Tags         Matches
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        match  body  CreateMatchRequest  true  "Teams, overs and toss"
// @Success      201  {object} scoring.Match
// @Failure      400  {object} map[string]string "Validation error"
// @Failure      401  {object} map[string]string "Unauthorized"
// @Router       /matches [post]
func (mc *MatchController) CreateMatch(c *gin.Context) {
	var req CreateMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationErrorResponse(c, err)
		return
	}

	m, err := mc.service.CreateMatch(c.Request.Context(), scoring.NewMatchParams{
		TeamA:             scoring.TeamRef{ID: req.TeamA.ID, Name: req.TeamA.Name, Players: req.TeamA.Players},
		TeamB:             scoring.TeamRef{ID: req.TeamB.ID, Name: req.TeamB.Name, Players: req.TeamB.Players},
		TotalOvers:        req.TotalOvers,
		TossWinnerID:      req.TossWinnerID,
		TossDecision:      req.TossDecision,
		MaxPlayersPerSide: req.MaxPlayersPerSide,
		Venue:             req.Venue,
		ScheduledAt:       req.ScheduledAt,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	responses.SuccessResponse(c, http.StatusCreated, gin.H{
		"message": "Match created successfully",
		"match":   m,
	})
}

// @Summary      List matches
// @Tags         Matches
// @Produce      json
// @Param        status     query  string  false  "upcoming, in_progress, completed or abandoned"
// @Param        team_id    query  int     false  "Matches involving this team"
// @Param        page       query  int     false  "Page number"
// @Param        page_size  query  int     false  "Page size (max 100)"
// @Success      200  {array} scoring.Match
// @Router       /matches [get]
func (mc *MatchController) ListMatches(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 10
	}

	filter := ListFilter{
		Status:   scoring.MatchStatus(c.Query("status")),
		Page:     page,
		PageSize: pageSize,
	}
	if teamID, err := strconv.ParseUint(c.Query("team_id"), 10, 64); err == nil {
		filter.TeamID = uint(teamID)
	}

	matches, total, err := mc.service.ListMatches(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	responses.PaginatedResponse(c, http.StatusOK, matches, page, pageSize, total)
}

// @Summary      Get a match scorecard
// @Tags         Matches
// @Produce      json
// @Param        id  path  int  true  "Match ID"
// @Success      200  {object} scoring.Match
// @Failure      404  {object} map[string]string "Match not found"
// @Router       /matches/{id} [get]
func (mc *MatchController) GetMatch(c *gin.Context) {
	id, ok := parseMatchID(c)
	if !ok {
		return
	}
	m, err := mc.service.GetMatch(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	responses.SuccessResponse(c, http.StatusOK, m)
}

// @Summary      Bowler rotation advice
// @Description  Lists the bowlers allowed to bowl the next over and recommends the least used.
// @Tags         Scoring
// @Produce      json
// @Param        id  path  int  true  "Match ID"
// @Success      200  {object} scoring.RotationAdvice
// @Failure      404  {object} map[string]string "Match not found"
// @Router       /matches/{id}/bowler-rotation [get]
func (mc *MatchController) GetBowlerRotation(c *gin.Context) {
	id, ok := parseMatchID(c)
	if !ok {
		return
	}
	advice, err := mc.service.GetBowlerRotation(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	responses.SuccessResponse(c, http.StatusOK, advice)
}

// @Summary      Record a delivery
// @Tags         Scoring
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id    path  int                   true  "Match ID"
// @Param        ball  body  scoring.BallDelivery  true  "Delivery outcome"
// @Success      200  {object} BallResponse
// @Failure      400  {object} map[string]string "Invalid delivery"
// @Failure      409  {object} map[string]string "Not allowed in the current state or concurrent update"
// @Failure      422  {object} map[string]string "Match is over"
// @Failure      429  {object} map[string]string "Too many requests"
// @Router       /matches/{id}/balls [post]
func (mc *MatchController) ProcessBall(c *gin.Context) {
	id, ok := parseMatchID(c)
	if !ok {
		return
	}
	var d scoring.BallDelivery
	if err := c.ShouldBindJSON(&d); err != nil {
		responses.ValidationErrorResponse(c, err)
		return
	}
	m, res, err := mc.service.ProcessBall(c.Request.Context(), id, d)
	if err != nil {
		respondError(c, err)
		return
	}
	responses.SuccessResponse(c, http.StatusOK, BallResponse{Match: m, Ball: res})
}

// @Summary      Start the next over
// @Tags         Scoring
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id    path  int               true  "Match ID"
// @Param        over  body  StartOverRequest  true  "Bowler for the over"
// @Success      200  {object} scoring.Match
// @Failure      409  {object} map[string]string "Bowler not available or over in progress"
// @Router       /matches/{id}/overs [post]
func (mc *MatchController) StartNewOver(c *gin.Context) {
	id, ok := parseMatchID(c)
	if !ok {
		return
	}
	var req StartOverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationErrorResponse(c, err)
		return
	}
	m, err := mc.service.StartNewOver(c.Request.Context(), id, req.BowlerID)
	if err != nil {
		respondError(c, err)
		return
	}
	responses.SuccessResponse(c, http.StatusOK, m)
}

// @Summary      Set the batters at the crease
// @Tags         Scoring
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path  int                   true  "Match ID"
// @Param        batsmen  body  UpdateBatsmenRequest  true  "Striker and non-striker"
// @Success      200  {object} scoring.Match
// @Failure      400  {object} map[string]string "Invalid batsmen"
// @Router       /matches/{id}/batsmen [put]
func (mc *MatchController) UpdateBatsmen(c *gin.Context) {
	id, ok := parseMatchID(c)
	if !ok {
		return
	}
	var req UpdateBatsmenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationErrorResponse(c, err)
		return
	}
	m, err := mc.service.UpdateBatsmen(c.Request.Context(), id, req.OnStrikeID, req.OffStrikeID)
	if err != nil {
		respondError(c, err)
		return
	}
	responses.SuccessResponse(c, http.StatusOK, m)
}

// @Summary      Abandon a match
// @Tags         Matches
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id      path  int             true  "Match ID"
// @Param        reason  body  AbandonRequest  false "Why play was called off"
// @Success      200  {object} scoring.Match
// @Failure      422  {object} map[string]string "Match is already over"
// @Router       /matches/{id}/abandon [post]
func (mc *MatchController) AbandonMatch(c *gin.Context) {
	id, ok := parseMatchID(c)
	if !ok {
		return
	}
	var req AbandonRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			responses.ValidationErrorResponse(c, err)
			return
		}
	}
	m, err := mc.service.AbandonMatch(c.Request.Context(), id, req.Reason)
	if err != nil {
		respondError(c, err)
		return
	}
	if userID, err := mw.GetUserIDFromContext(c); err == nil {
		log.Printf("match %d abandoned by user %d: %s", id, userID, m.Result)
	}
	responses.SuccessResponse(c, http.StatusOK, m)
}

// @Summary      Update match details
// @Tags         Matches
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id     path  int                 true  "Match ID"
// @Param        match  body  UpdateMatchRequest  true  "Venue and schedule"
// @Success      200  {object} scoring.Match
// @Router       /matches/{id} [patch]
func (mc *MatchController) UpdateMatch(c *gin.Context) {
	id, ok := parseMatchID(c)
	if !ok {
		return
	}
	var req UpdateMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationErrorResponse(c, err)
		return
	}
	m, err := mc.service.UpdateDetails(c.Request.Context(), id, DetailsUpdate{
		Venue:       req.Venue,
		ScheduledAt: req.ScheduledAt,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	responses.SuccessResponse(c, http.StatusOK, m)
}
