package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/LaBanHSPO/premium-bio-website/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestFullCycle walks the whole admin session: log in, replace the
// configuration, read it back anonymously, log out, and confirm the
// token is dead afterwards.
func TestFullCycle(t *testing.T) {
	h, db, _ := setupTestHandler(t)
	r := setupTestRouter(h)
	createAdminUser(t, db, "admin", "correct-horse")

	// 1. Login
	token := loginAs(t, r, "admin", "correct-horse")

	// 2. Replace the stored configuration wholesale
	w := performJSON(r, "POST", "/api/admin/update", token, gin.H{"bioData": testDocument()})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// 3. Anonymous read returns the submitted document with ids
	// renumbered by position
	w = performJSON(r, "GET", "/api/config", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var doc models.BioData
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &doc))
	assert.Equal(t, "Jane", doc.Profile.Name)
	assert.Equal(t, "Creator", doc.Profile.Tagline)
	require.Len(t, doc.Profile.SocialLinks, 1)
	assert.Equal(t, "instagram", doc.Profile.SocialLinks[0].Icon)

	require.Len(t, doc.Links, 2)
	assert.Equal(t, 1, doc.Links[0].ID)
	assert.Equal(t, "Blog", doc.Links[0].Name)
	assert.Equal(t, 2, doc.Links[1].ID)
	assert.Equal(t, "Newsletter", doc.Links[1].Name)

	require.Len(t, doc.Products, 1)
	assert.Equal(t, "Preset Pack", doc.Products[0].Name)
	assert.Empty(t, doc.AITools)

	// 4. Export matches what the public read serves
	w = performJSON(r, "GET", "/api/admin/export", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var exported models.BioData
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &exported))
	assert.Equal(t, doc, exported)

	// 5. Logout
	w = performJSON(r, "POST", "/api/admin/logout", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Logged out successfully")

	// 6. The token no longer opens the admin surface
	w = performJSON(r, "POST", "/api/admin/update", token, gin.H{"bioData": testDocument()})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid or expired token")

	// 7. The published page is unaffected by the logout
	w = performJSON(r, "GET", "/api/config", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &doc))
	assert.Equal(t, "Jane", doc.Profile.Name)
}
