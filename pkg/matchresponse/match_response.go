package matchresponse

import (
	"errors"
	"math"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	pv "github.com/DhavalSuthar-24/crease/pkg/validator"
)

type jsonSuccessResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

type jsonErrorResponse struct {
	Status  string            `json:"status"` // "error" for client errors, "fail" for server failures
	Message string            `json:"message"`
	Code    int               `json:"code"`
	Errors  map[string]string `json:"errors,omitempty"`
}

type jsonPaginatedResponse struct {
	Status     string      `json:"status"`
	Data       interface{} `json:"data"`
	Pagination pagination  `json:"pagination"`
}

type pagination struct {
	TotalItems   int64 `json:"total_items"`
	TotalPages   int   `json:"total_pages"`
	CurrentPage  int   `json:"current_page"`
	PageSize     int   `json:"page_size"`
	HasNextPage  bool  `json:"has_next_page"`
	HasPrevPage  bool  `json:"has_prev_page"`
	NextPage     *int  `json:"next_page,omitempty"`
	PreviousPage *int  `json:"previous_page,omitempty"`
}

func statusText(code int) string {
	if code >= http.StatusInternalServerError {
		return "fail"
	}
	return "error"
}

// ErrorResponse sends a standardized error JSON response.
func ErrorResponse(c *gin.Context, statusCode int, message string) {
	FieldErrorResponse(c, statusCode, message, nil)
}

// FieldErrorResponse sends an error response with per-field messages.
func FieldErrorResponse(c *gin.Context, statusCode int, message string, fields map[string]string) {
	c.AbortWithStatusJSON(statusCode, jsonErrorResponse{
		Status:  statusText(statusCode),
		Message: message,
		Code:    statusCode,
		Errors:  fields,
	})
}

// ValidationErrorResponse reports a binding failure from c.ShouldBindJSON or similar.
func ValidationErrorResponse(c *gin.Context, err error) {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		FieldErrorResponse(c, http.StatusBadRequest, "Validation failed. Please check your input.", pv.ParseError(err))
		return
	}
	ErrorResponse(c, http.StatusBadRequest, "Invalid request payload: "+err.Error())
}

// SuccessResponse wraps data in the success envelope. A gin.H with a string "message"
// key has that key lifted into the envelope.
func SuccessResponse(c *gin.Context, statusCode int, responseData interface{}) {
	payload := jsonSuccessResponse{Status: "success", Data: responseData}
	if gh, ok := responseData.(gin.H); ok {
		if msg, isStr := gh["message"].(string); isStr {
			payload.Message = msg
			rest := make(gin.H, len(gh))
			for k, v := range gh {
				if k != "message" {
					rest[k] = v
				}
			}
			payload.Data = nil
			if len(rest) > 0 {
				payload.Data = rest
			}
		}
	}
	c.JSON(statusCode, payload)
}

// PaginatedResponse sends a page of items with navigation details.
func PaginatedResponse(c *gin.Context, statusCode int, itemsData interface{}, currentPage int, pageSize int, totalItems int64) {
	if pageSize <= 0 {
		pageSize = 10
	}
	totalPages := int(math.Ceil(float64(totalItems) / float64(pageSize)))

	p := pagination{
		TotalItems:  totalItems,
		TotalPages:  totalPages,
		CurrentPage: currentPage,
		PageSize:    pageSize,
		HasNextPage: currentPage < totalPages,
		HasPrevPage: currentPage > 1 && currentPage <= totalPages,
	}
	if p.HasNextPage {
		next := currentPage + 1
		p.NextPage = &next
	}
	if p.HasPrevPage {
		prev := currentPage - 1
		p.PreviousPage = &prev
	}
	c.JSON(statusCode, jsonPaginatedResponse{
		Status:     "success",
		Data:       itemsData,
		Pagination: p,
	})
}
