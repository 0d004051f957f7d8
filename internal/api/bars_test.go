package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"drinkingman/internal/models"
)

func createBar(t *testing.T, s *Server, token, name string) models.Bar {
	t.Helper()
	w := doJSON(t, s, http.MethodPost, "/api/bars", token, gin.H{"name": name})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var bar models.Bar
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &bar))
	return bar
}

func addItem(t *testing.T, s *Server, token, barID, name, category string) models.InventoryItem {
	t.Helper()
	w := doJSON(t, s, http.MethodPost, "/api/bars/"+barID+"/inventory", token, gin.H{
		"name": name, "category": category,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var item models.InventoryItem
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &item))
	return item
}

func TestBarLifecycle(t *testing.T) {
	s := newTestServer(t, nil)
	_, token := register(t, s, "owner")

	bar := createBar(t, s, token, "Home Bar")
	assert.Equal(t, "Home Bar", bar.Name)

	item := addItem(t, s, token, bar.ID, "Gin", "ingredient")
	addItem(t, s, token, bar.ID, "Tonic water", "drink")

	w := doJSON(t, s, http.MethodGet, "/api/bars/"+bar.ID, token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var got models.Bar
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Len(t, got.Inventory, 2)

	// Remove an item.
	w = doJSON(t, s, http.MethodDelete, "/api/bars/"+bar.ID+"/inventory?itemId="+item.ID, token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, s, http.MethodDelete, "/api/bars/"+bar.ID+"/inventory?itemId="+item.ID, token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Delete the bar.
	w = doJSON(t, s, http.MethodDelete, "/api/bars/"+bar.ID, token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, s, http.MethodGet, "/api/bars/"+bar.ID, token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestBarInvalidCategory(t *testing.T) {
	s := newTestServer(t, nil)
	_, token := register(t, s, "owner")
	bar := createBar(t, s, token, "Bar")

	w := doJSON(t, s, http.MethodPost, "/api/bars/"+bar.ID+"/inventory", token, gin.H{
		"name": "Mystery", "category": "gadget",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBarMatches(t *testing.T) {
	s := newTestServer(t, nil)
	_, token := register(t, s, "owner")
	bar := createBar(t, s, token, "Bar")

	addItem(t, s, token, bar.ID, "gin", "ingredient")
	addItem(t, s, token, bar.ID, "tonic water", "drink")
	// Food never satisfies a recipe.
	addItem(t, s, token, bar.ID, "Tequila", "food")

	w := doJSON(t, s, http.MethodGet, "/api/bars/"+bar.ID+"/matches", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Matches []struct {
			Name string `json:"name"`
		} `json:"matches"`
		Total int `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, 1, resp.Total)
	assert.Equal(t, "Gin Tonic", resp.Matches[0].Name)
}

func TestBarSharing(t *testing.T) {
	s := newTestServer(t, nil)
	_, ownerToken := register(t, s, "owner")
	friendID, friendToken := register(t, s, "friend")

	bar := createBar(t, s, ownerToken, "Shared Bar")

	// Not visible to the friend yet.
	w := doJSON(t, s, http.MethodGet, "/api/bars/"+bar.ID, friendToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Share by username.
	w = doJSON(t, s, http.MethodPost, "/api/bars/"+bar.ID+"/share", ownerToken, gin.H{"username": "friend"})
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, s, http.MethodGet, "/api/bars/"+bar.ID, friendToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// Shared bars show up in the friend's list.
	w = doJSON(t, s, http.MethodGet, "/api/bars", friendToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var bars []models.Bar
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &bars))
	assert.Len(t, bars, 1)

	// Viewers cannot delete.
	w = doJSON(t, s, http.MethodDelete, "/api/bars/"+bar.ID, friendToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Unshare.
	w = doJSON(t, s, http.MethodDelete, "/api/bars/"+bar.ID+"/share?userId="+friendID, ownerToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, s, http.MethodGet, "/api/bars/"+bar.ID, friendToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestShareUnknownUser(t *testing.T) {
	s := newTestServer(t, nil)
	_, token := register(t, s, "owner")
	bar := createBar(t, s, token, "Bar")

	w := doJSON(t, s, http.MethodPost, "/api/bars/"+bar.ID+"/share", token, gin.H{"username": "ghost"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}
