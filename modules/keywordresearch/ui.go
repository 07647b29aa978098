package keywordresearch

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"contentagent/modules/keywordresearch/application"
)

func (m *Module) handleKeywordsPage(c *gin.Context) {
	data := gin.H{"Title": "Keyword Research", "Keyword": c.Query("keyword")}
	if keyword := c.Query("keyword"); keyword != "" {
		if research, err := m.service.Latest(c.Request.Context(), keyword); err == nil {
			data["Result"] = &research
		}
	}
	if history, err := m.service.History(c.Request.Context(), 10); err == nil {
		data["History"] = history
	}
	m.ui.Render(c, http.StatusOK, "keywords.tmpl", data)
}

func (m *Module) handleKeywordsResearch(c *gin.Context) {
	keyword := c.PostForm("keyword")
	data := gin.H{"Title": "Keyword Research", "Keyword": keyword}

	research, err := m.service.Research(c.Request.Context(), application.ResearchRequest{Keyword: keyword})
	if err != nil {
		data["Error"] = err.Error()
	} else {
		data["Result"] = &research
	}
	if history, err := m.service.History(c.Request.Context(), 10); err == nil {
		data["History"] = history
	}
	m.ui.Render(c, http.StatusOK, "keywords.tmpl", data)
}
