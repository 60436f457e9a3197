package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/beaverchoice/fulfillment-backend/internal/data/repos/quotesrepo"
)

type QuoteHandler struct {
	quoteRepo quotesrepo.Repo
}

func NewQuoteHandler(quoteRepo quotesrepo.Repo) *QuoteHandler {
	return &QuoteHandler{quoteRepo: quoteRepo}
}

// SearchQuotes matches ?keywords=a,b,c conjunctively against historical
// request text and quote explanations.
func (qh *QuoteHandler) SearchQuotes(c *gin.Context) {
	var keywords []string
	for _, part := range strings.Split(c.Query("keywords"), ",") {
		if part = strings.TrimSpace(part); part != "" {
			keywords = append(keywords, part)
		}
	}
	limit, _ := strconv.Atoi(c.Query("limit"))

	records, err := qh.quoteRepo.Search(c.Request.Context(), nil, keywords, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"quotes": records})
}
