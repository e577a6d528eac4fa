package match

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/DhavalSuthar-24/crease/pkg/token"
	pv "github.com/DhavalSuthar-24/crease/pkg/validator"
)

const testSecret = "test-secret"

func init() {
	gin.SetMode(gin.TestMode)
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		pv.Configure(v)
	}
}

type apiClient struct {
	t      *testing.T
	router *gin.Engine
	token  string
}

type envelope struct {
	Status  string            `json:"status"`
	Message string            `json:"message"`
	Data    json.RawMessage   `json:"data"`
	Errors  map[string]string `json:"errors"`
}

func newAPI(t *testing.T) (*apiClient, *apiClient, *apiClient) {
	t.Helper()
	svc, _, _ := newTestService(3)
	r := gin.New()
	MatchRoutes(r.Group("/api"), svc, RouteConfig{JWTSecret: testSecret, RateLimitPerMinute: 1000})

	sign := func(role string) string {
		tok, err := token.GenerateJWT(7, role, testSecret, 5)
		if err != nil {
			t.Fatalf("GenerateJWT: %v", err)
		}
		return tok
	}
	return &apiClient{t: t, router: r},
		&apiClient{t: t, router: r, token: sign(token.RoleScorer)},
		&apiClient{t: t, router: r, token: sign(token.RoleAdmin)}
}

func (a *apiClient) do(method, path string, body interface{}) (int, envelope) {
	a.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			a.t.Fatalf("encode: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if a.token != "" {
		req.Header.Set("Authorization", "Bearer "+a.token)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)

	var env envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		a.t.Fatalf("%s %s: decode %q: %v", method, path, w.Body.String(), err)
	}
	return w.Code, env
}

func createBody() gin.H {
	return gin.H{
		"team_a":         gin.H{"id": 1, "name": "Lions", "players": squad(101)},
		"team_b":         gin.H{"id": 2, "name": "Tigers", "players": squad(201)},
		"total_overs":    20,
		"toss_winner_id": 2,
		"toss_decision":  "bowl",
		"venue":          "Eden Park",
	}
}

func TestCreateAndScoreOverHTTP(t *testing.T) {
	public, scorer, _ := newAPI(t)

	code, env := scorer.do(http.MethodPost, "/api/matches", createBody())
	if code != http.StatusCreated || env.Message != "Match created successfully" {
		t.Fatalf("create: %d %+v", code, env)
	}
	var created struct {
		Match struct {
			ID      uint   `json:"id"`
			Status  string `json:"status"`
			Innings []struct {
				BattingTeamID uint `json:"batting_team_id"`
			} `json:"innings"`
		} `json:"match"`
	}
	if err := json.Unmarshal(env.Data, &created); err != nil {
		t.Fatalf("decode match: %v", err)
	}
	if created.Match.Status != "upcoming" || created.Match.Innings[0].BattingTeamID != 1 {
		t.Errorf("created = %+v", created.Match)
	}
	base := fmt.Sprintf("/api/matches/%d", created.Match.ID)

	// Scoring before anyone is at the crease is a state error.
	if code, _ := scorer.do(http.MethodPost, base+"/balls", gin.H{"runs": 1}); code != http.StatusConflict {
		t.Errorf("ball without batters: %d", code)
	}
	if code, env := scorer.do(http.MethodPut, base+"/batsmen", gin.H{"on_strike_id": 101, "off_strike_id": 102}); code != http.StatusOK {
		t.Fatalf("batsmen: %d %+v", code, env)
	}
	if code, env := scorer.do(http.MethodPost, base+"/overs", gin.H{"bowler_id": 201}); code != http.StatusOK {
		t.Fatalf("over: %d %+v", code, env)
	}

	code, env = scorer.do(http.MethodPost, base+"/balls", gin.H{"runs": 4})
	if code != http.StatusOK {
		t.Fatalf("ball: %d %+v", code, env)
	}
	var ball struct {
		Match struct {
			Status  string `json:"status"`
			Innings []struct {
				TotalRuns int    `json:"total_runs"`
				Overs     string `json:"overs"`
				Batting   []struct {
					PlayerID uint `json:"player_id"`
					Runs     int  `json:"runs"`
					Fours    int  `json:"fours"`
				} `json:"batting"`
			} `json:"innings"`
		} `json:"match"`
		Ball struct {
			OverCompleted bool `json:"over_completed"`
		} `json:"ball"`
	}
	if err := json.Unmarshal(env.Data, &ball); err != nil {
		t.Fatalf("decode ball: %v", err)
	}
	inn := ball.Match.Innings[0]
	if ball.Match.Status != "in_progress" || inn.TotalRuns != 4 || inn.Overs != "0.1" || ball.Ball.OverCompleted {
		t.Errorf("after ball: %+v", ball)
	}
	if len(inn.Batting) != 2 || inn.Batting[0].PlayerID != 101 || inn.Batting[0].Fours != 1 {
		t.Errorf("batting card = %+v", inn.Batting)
	}

	code, env = public.do(http.MethodGet, base+"/bowler-rotation", nil)
	if code != http.StatusOK {
		t.Fatalf("rotation: %d %+v", code, env)
	}

	code, env = public.do(http.MethodGet, "/api/matches?status=in_progress", nil)
	if code != http.StatusOK {
		t.Fatalf("list: %d", code)
	}
	var list []json.RawMessage
	if err := json.Unmarshal(env.Data, &list); err != nil || len(list) != 1 {
		t.Errorf("list = %s (%v)", env.Data, err)
	}
}

func TestErrorMappingOverHTTP(t *testing.T) {
	public, scorer, admin := newAPI(t)

	_, env := scorer.do(http.MethodPost, "/api/matches", createBody())
	var created struct {
		Match struct {
			ID uint `json:"id"`
		} `json:"match"`
	}
	if err := json.Unmarshal(env.Data, &created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	base := fmt.Sprintf("/api/matches/%d", created.Match.ID)
	scorer.do(http.MethodPut, base+"/batsmen", gin.H{"on_strike_id": 101, "off_strike_id": 102})
	scorer.do(http.MethodPost, base+"/overs", gin.H{"bowler_id": 201})

	t.Run("invalid delivery names the field", func(t *testing.T) {
		code, env := scorer.do(http.MethodPost, base+"/balls", gin.H{"runs": 9})
		if code != http.StatusBadRequest || env.Errors["runs"] == "" {
			t.Errorf("%d %+v", code, env)
		}
	})
	t.Run("binding errors use json names", func(t *testing.T) {
		code, env := scorer.do(http.MethodPut, base+"/batsmen", gin.H{"on_strike_id": 101, "off_strike_id": 101})
		if code != http.StatusBadRequest || env.Errors["off_strike_id"] == "" {
			t.Errorf("%d %+v", code, env)
		}
	})
	t.Run("bowler change mid-over", func(t *testing.T) {
		if code, env := scorer.do(http.MethodPost, base+"/balls", gin.H{"runs": 0}); code != http.StatusOK {
			t.Fatalf("dot ball: %d %+v", code, env)
		}
		if code, _ := scorer.do(http.MethodPost, base+"/overs", gin.H{"bowler_id": 202}); code != http.StatusConflict {
			t.Errorf("status = %d", code)
		}
	})
	t.Run("unknown match", func(t *testing.T) {
		if code, _ := public.do(http.MethodGet, "/api/matches/999", nil); code != http.StatusNotFound {
			t.Errorf("status = %d", code)
		}
	})
	t.Run("bad id", func(t *testing.T) {
		if code, _ := public.do(http.MethodGet, "/api/matches/abc", nil); code != http.StatusBadRequest {
			t.Errorf("status = %d", code)
		}
	})
	t.Run("writes need a token", func(t *testing.T) {
		if code, _ := public.do(http.MethodPost, base+"/balls", gin.H{"runs": 1}); code != http.StatusUnauthorized {
			t.Errorf("status = %d", code)
		}
	})
	t.Run("scorers cannot abandon", func(t *testing.T) {
		if code, _ := scorer.do(http.MethodPost, base+"/abandon", nil); code != http.StatusForbidden {
			t.Errorf("status = %d", code)
		}
	})

	if code, env := admin.do(http.MethodPatch, base, gin.H{"venue": "Lord's"}); code != http.StatusOK {
		t.Fatalf("patch: %d %+v", code, env)
	}
	if code, env := admin.do(http.MethodPost, base+"/abandon", gin.H{"reason": "rain"}); code != http.StatusOK {
		t.Fatalf("abandon: %d %+v", code, env)
	}
	if code, _ := scorer.do(http.MethodPost, base+"/balls", gin.H{"runs": 1}); code != http.StatusUnprocessableEntity {
		t.Errorf("ball after abandon: %d", code)
	}
	if code, _ := admin.do(http.MethodPost, base+"/abandon", nil); code != http.StatusUnprocessableEntity {
		t.Errorf("second abandon: %d", code)
	}
}
