package contentdiscovery

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (m *Module) handleDiscoveryPage(c *gin.Context) {
	data := gin.H{"Title": "Content Discovery", "Target": c.Query("target")}
	m.attachTrending(c, data)
	m.ui.Render(c, http.StatusOK, "discovery.tmpl", data)
}

func (m *Module) handleDiscoveryAnalyze(c *gin.Context) {
	target := c.PostForm("target")
	data := gin.H{"Title": "Content Discovery", "Target": target}

	analysis, err := m.service.AnalyzeSite(c.Request.Context(), target)
	if err != nil {
		data["Error"] = err.Error()
	} else {
		data["Analysis"] = analysis
	}
	m.attachTrending(c, data)
	m.ui.Render(c, http.StatusOK, "discovery.tmpl", data)
}

func (m *Module) attachTrending(c *gin.Context, data gin.H) {
	trending, err := m.service.TrendingTopics(c.Request.Context(), 10)
	if err != nil || len(trending) == 0 {
		return
	}
	data["Trending"] = trending
}
