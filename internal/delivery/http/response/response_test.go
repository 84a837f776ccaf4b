package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-portfolio-site/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvelope(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("success carries data and request id", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Set(string(domain.KeyRequestID), "req-1")

		Success(c, http.StatusOK, "ok", map[string]string{"k": "v"})

		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, true, body["success"])
		assert.Equal(t, "req-1", body["request_id"])
		assert.Equal(t, map[string]interface{}{"k": "v"}, body["data"])
		assert.NotContains(t, body, "error")
	})

	t.Run("error omits data", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		Error(c, http.StatusBadRequest, "bad", map[string][]string{"email": {"Invalid email address"}})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, false, body["success"])
		assert.NotContains(t, body, "data")
		assert.NotContains(t, body, "request_id")
		assert.Contains(t, body, "error")
	})
}
