package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/NiltersBot_Go/internal/catalog"
	"github.com/osse101/NiltersBot_Go/internal/domain"
)

const testLeaderboardSize = 5

func serve(t *testing.T, eng *MockEngine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	r := chi.NewRouter()
	RegisterRoutes(r, eng, testLeaderboardSize)

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func TestHandleRegister(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		setupMock      func(*MockEngine)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "First registration",
			body: `{"player_id":42,"display_name":"Alice"}`,
			setupMock: func(m *MockEngine) {
				m.On("Ensure", mock.Anything, int64(42), "Alice").
					Return(&domain.Player{ID: 42, DisplayName: "Alice", Coins: 100}, true, nil)
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   `"created":true`,
		},
		{
			name: "Already registered",
			body: `{"player_id":42,"display_name":"Alice"}`,
			setupMock: func(m *MockEngine) {
				m.On("Ensure", mock.Anything, int64(42), "Alice").
					Return(&domain.Player{ID: 42, DisplayName: "Alice", Coins: 7}, false, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"coins":7`,
		},
		{
			name:           "Missing player id",
			body:           `{"display_name":"Alice"}`,
			setupMock:      func(m *MockEngine) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"player_id":"Must be greater than 0"`,
		},
		{
			name:           "Malformed body",
			body:           `{"player_id":`,
			setupMock:      func(m *MockEngine) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   ErrMsgInvalidRequest,
		},
		{
			name:           "Unknown field",
			body:           `{"player_id":1,"coins":999999}`,
			setupMock:      func(m *MockEngine) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   ErrMsgInvalidRequest,
		},
		{
			name: "Store down",
			body: `{"player_id":42}`,
			setupMock: func(m *MockEngine) {
				m.On("Ensure", mock.Anything, int64(42), "").
					Return(nil, false, fmt.Errorf("%w: ensure: boom", domain.ErrStoreUnavailable))
			},
			expectedStatus: http.StatusServiceUnavailable,
			expectedBody:   ErrMsgUnavailableError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eng := &MockEngine{}
			tt.setupMock(eng)

			w := serve(t, eng, http.MethodPost, "/players", tt.body)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)
			eng.AssertExpectations(t)
		})
	}
}

func TestHandleGetProfile(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		eng := &MockEngine{}
		eng.On("GetProfile", mock.Anything, int64(7)).Return(&domain.Profile{
			Player:    domain.Player{ID: 7, DisplayName: "Bob", Coins: 100, Level: 1, Health: 100},
			ItemCount: 1,
		}, nil)

		w := serve(t, eng, http.MethodGet, "/players/7", "")

		require.Equal(t, http.StatusOK, w.Code)
		got := decodeBody[domain.Profile](t, w)
		assert.Equal(t, int64(7), got.ID)
		assert.Equal(t, 1, got.ItemCount)
	})

	t.Run("not registered", func(t *testing.T) {
		eng := &MockEngine{}
		eng.On("GetProfile", mock.Anything, int64(7)).Return(nil, domain.ErrPlayerNotFound)

		w := serve(t, eng, http.MethodGet, "/players/7", "")

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), ErrMsgPlayerNotFoundError)
	})

	for _, raw := range []string{"abc", "0", "-3", "99999999999999999999"} {
		t.Run("bad id "+raw, func(t *testing.T) {
			eng := &MockEngine{}

			w := serve(t, eng, http.MethodGet, "/players/"+raw, "")

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), ErrMsgInvalidPlayerID)
			eng.AssertNotCalled(t, "GetProfile", mock.Anything, mock.Anything)
		})
	}
}

func TestHandleGetInventory(t *testing.T) {
	eng := &MockEngine{}
	eng.On("Inventory", mock.Anything, int64(3)).Return([]domain.InventoryEntry{
		{ID: 1, PlayerID: 3, ItemName: domain.StarterItemName, Quantity: 1},
		{ID: 2, PlayerID: 3, ItemName: "potion", Quantity: 1},
		{ID: 3, PlayerID: 3, ItemName: "potion", Quantity: 1},
	}, nil)

	w := serve(t, eng, http.MethodGet, "/players/3/inventory", "")

	require.Equal(t, http.StatusOK, w.Code)
	got := decodeBody[InventoryResponse](t, w)
	assert.Len(t, got.Entries, 3)
	assert.Equal(t, 2, got.Totals["potion"])
	assert.Equal(t, 1, got.Totals[domain.StarterItemName])
}

func TestHandleBattle(t *testing.T) {
	t.Run("win", func(t *testing.T) {
		eng := &MockEngine{}
		eng.On("ResolveBattle", mock.Anything, int64(5), "dragon").Return(&domain.BattleOutcome{
			BossKey: "dragon", BossName: "Dragon", Result: domain.BattleWin, Roll: 0.9, Delta: 100, NewBalance: 200,
		}, nil)

		w := serve(t, eng, http.MethodPost, "/players/5/battles", `{"boss":"dragon"}`)

		require.Equal(t, http.StatusOK, w.Code)
		got := decodeBody[domain.BattleOutcome](t, w)
		assert.Equal(t, domain.BattleWin, got.Result)
		assert.Equal(t, 200, got.NewBalance)
	})

	t.Run("unknown boss", func(t *testing.T) {
		eng := &MockEngine{}
		eng.On("ResolveBattle", mock.Anything, int64(5), "hydra").
			Return(nil, fmt.Errorf("%w: hydra", domain.ErrUnknownBoss))

		w := serve(t, eng, http.MethodPost, "/players/5/battles", `{"boss":"hydra"}`)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), ErrMsgUnknownBossError)
	})

	t.Run("boss required", func(t *testing.T) {
		eng := &MockEngine{}

		w := serve(t, eng, http.MethodPost, "/players/5/battles", `{}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), `"boss":"This field is required"`)
	})
}

func TestHandlePurchase(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		eng := &MockEngine{}
		eng.On("Purchase", mock.Anything, int64(9), "sword").Return(&domain.PurchaseReceipt{
			ItemName: "sword", Label: "Steel sword", PriceDebited: 100, NewBalance: 50, EntryID: 4,
		}, nil)

		w := serve(t, eng, http.MethodPost, "/players/9/purchases", `{"item":"sword"}`)

		require.Equal(t, http.StatusCreated, w.Code)
		got := decodeBody[domain.PurchaseReceipt](t, w)
		assert.Equal(t, 50, got.NewBalance)
	})

	t.Run("insufficient funds", func(t *testing.T) {
		eng := &MockEngine{}
		eng.On("Purchase", mock.Anything, int64(9), "sword").
			Return(nil, fmt.Errorf("%w: have 30, need 100", domain.ErrInsufficientFunds))

		w := serve(t, eng, http.MethodPost, "/players/9/purchases", `{"item":"sword"}`)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), ErrMsgNotEnoughMoneyError)
		assert.NotContains(t, w.Body.String(), "have 30")
	})
}

func TestHandleWork(t *testing.T) {
	eng := &MockEngine{}
	eng.On("Work", mock.Anything, int64(11)).Return(&domain.EarningReceipt{Amount: 35, Flavor: "Miner", NewBalance: 135}, nil)

	w := serve(t, eng, http.MethodPost, "/players/11/work", "")

	require.Equal(t, http.StatusOK, w.Code)
	got := decodeBody[domain.EarningReceipt](t, w)
	assert.Equal(t, 35, got.Amount)
	assert.Equal(t, "Miner", got.Flavor)
}

func TestHandleLeaderboard(t *testing.T) {
	entries := []domain.LeaderboardEntry{
		{Rank: 1, PlayerID: 2, DisplayName: "B", Coins: 300},
		{Rank: 2, PlayerID: 1, DisplayName: "A", Coins: 100},
	}

	for _, path := range []string{"/leaderboard", "/leaderboard?limit=0"} {
		t.Run("default size "+path, func(t *testing.T) {
			eng := &MockEngine{}
			eng.On("Leaderboard", mock.Anything, testLeaderboardSize).Return(entries, nil)

			w := serve(t, eng, http.MethodGet, path, "")

			require.Equal(t, http.StatusOK, w.Code)
			assert.Len(t, decodeBody[LeaderboardResponse](t, w).Entries, 2)
			eng.AssertExpectations(t)
		})
	}

	t.Run("limit capped", func(t *testing.T) {
		eng := &MockEngine{}
		eng.On("Leaderboard", mock.Anything, domain.MaxLeaderboardSize).Return(entries, nil)

		w := serve(t, eng, http.MethodGet, "/leaderboard?limit=5000", "")

		require.Equal(t, http.StatusOK, w.Code)
		eng.AssertExpectations(t)
	})

	t.Run("explicit limit", func(t *testing.T) {
		eng := &MockEngine{}
		eng.On("Leaderboard", mock.Anything, 1).Return(entries[:1], nil)

		w := serve(t, eng, http.MethodGet, "/leaderboard?limit=1", "")

		require.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, decodeBody[LeaderboardResponse](t, w).Entries, 1)
	})

	for _, raw := range []string{"x", "-1"} {
		t.Run("invalid limit "+raw, func(t *testing.T) {
			eng := &MockEngine{}

			w := serve(t, eng, http.MethodGet, "/leaderboard?limit="+raw, "")

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), ErrMsgInvalidLimit)
		})
	}
}

func TestHandleCatalog(t *testing.T) {
	eng := &MockEngine{}
	eng.On("Catalog").Return(catalog.Default())

	w := serve(t, eng, http.MethodGet, "/catalog", "")

	require.Equal(t, http.StatusOK, w.Code)
	got := decodeBody[CatalogResponse](t, w)
	require.NotEmpty(t, got.Bosses)
	require.NotEmpty(t, got.Items)
	assert.Equal(t, "goblin", got.Bosses[0].Key)
	assert.Equal(t, "potion", got.Items[0].Key)
}

func TestMapServiceErrorToUserMessage(t *testing.T) {
	tests := []struct {
		err    error
		status int
		msg    string
	}{
		{nil, http.StatusInternalServerError, ErrMsgUnknownError},
		{domain.ErrPlayerNotFound, http.StatusNotFound, ErrMsgPlayerNotFoundError},
		{fmt.Errorf("wrap: %w", domain.ErrUnknownItem), http.StatusNotFound, ErrMsgUnknownItemError},
		{domain.ErrInvalidInput, http.StatusBadRequest, ErrMsgInvalidInputError},
		{domain.ErrInsufficientFunds, http.StatusConflict, ErrMsgNotEnoughMoneyError},
		{fmt.Errorf("%w: pg: connection refused", domain.ErrStoreUnavailable), http.StatusServiceUnavailable, ErrMsgUnavailableError},
		{assert.AnError, http.StatusInternalServerError, ErrMsgGenericServerError},
	}
	for _, tt := range tests {
		status, msg := mapServiceErrorToUserMessage(tt.err)
		assert.Equal(t, tt.status, status, "%v", tt.err)
		assert.Equal(t, tt.msg, msg, "%v", tt.err)
	}
}
