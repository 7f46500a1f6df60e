package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Rigzin00/HHTrails-BE/internal/http/respond"
	"github.com/Rigzin00/HHTrails-BE/internal/http/validation"
	"github.com/Rigzin00/HHTrails-BE/internal/services"
	"github.com/Rigzin00/HHTrails-BE/internal/utils"
)

// blogIDParams binds the :id path segment of blog routes.
type blogIDParams struct {
	ID string `uri:"id" validate:"required,uuid"`
}

// listBlogsQuery binds the blog list query string.
type listBlogsQuery struct {
	Category string `form:"category"`
	Page     string `form:"page" validate:"omitempty,number"`
	Limit    string `form:"limit" validate:"omitempty,number"`
}

// BlogHandler serves the blog routes.
type BlogHandler struct {
	blogs *services.BlogService
}

// NewBlogHandler constructs a BlogHandler.
func NewBlogHandler(blogs *services.BlogService) *BlogHandler {
	return &BlogHandler{blogs: blogs}
}

// Register mounts the blog routes on rg. Write operations sit behind the
// admin gate.
func (h *BlogHandler) Register(rg *gin.RouterGroup, admin gin.HandlerFunc) {
	rg.GET("", validation.Validate(validation.Schema{
		Query: func() any { return new(listBlogsQuery) },
	}), h.list)

	rg.GET("/:id", validation.Validate(validation.Schema{
		Params: func() any { return new(blogIDParams) },
	}), h.get)

	rg.POST("", admin, validation.Validate(validation.Schema{
		Body: func() any { return new(services.CreateBlogInput) },
	}), h.create)

	rg.PUT("/:id", admin, validation.Validate(validation.Schema{
		Params: func() any { return new(blogIDParams) },
		Body:   func() any { return new(services.UpdateBlogInput) },
		Refine: validation.NonEmptyPatch("At least one field must be provided for update"),
	}), h.update)

	rg.DELETE("/:id", admin, validation.Validate(validation.Schema{
		Params: func() any { return new(blogIDParams) },
	}), h.delete)
}

func (h *BlogHandler) list(c *gin.Context) {
	q := validation.Query[listBlogsQuery](c)

	blogs, pagination, err := h.blogs.List(c.Request.Context(), services.ListBlogsQuery{
		Category: q.Category,
		Page:     utils.AtoiDefault(q.Page, 1),
		Limit:    utils.ClampLimit(utils.AtoiDefault(q.Limit, 10), maxPageSize),
	})
	if err != nil {
		c.Error(err) //nolint:errcheck
		c.Abort()
		return
	}
	respond.Success(c, http.StatusOK, gin.H{"blogs": blogs, "pagination": pagination})
}

func (h *BlogHandler) get(c *gin.Context) {
	p := validation.Params[blogIDParams](c)

	blog, err := h.blogs.Get(c.Request.Context(), p.ID)
	if err != nil {
		c.Error(err) //nolint:errcheck
		c.Abort()
		return
	}
	respond.Success(c, http.StatusOK, gin.H{"blog": blog})
}

func (h *BlogHandler) create(c *gin.Context) {
	in := validation.Body[services.CreateBlogInput](c)

	blog, err := h.blogs.Create(c.Request.Context(), *in)
	if err != nil {
		c.Error(err) //nolint:errcheck
		c.Abort()
		return
	}
	respond.Success(c, http.StatusCreated, gin.H{"blog": blog})
}

func (h *BlogHandler) update(c *gin.Context) {
	p := validation.Params[blogIDParams](c)
	in := validation.Body[services.UpdateBlogInput](c)

	blog, err := h.blogs.Update(c.Request.Context(), p.ID, *in)
	if err != nil {
		c.Error(err) //nolint:errcheck
		c.Abort()
		return
	}
	respond.Success(c, http.StatusOK, gin.H{"blog": blog})
}

func (h *BlogHandler) delete(c *gin.Context) {
	p := validation.Params[blogIDParams](c)

	if err := h.blogs.Delete(c.Request.Context(), p.ID); err != nil {
		c.Error(err) //nolint:errcheck
		c.Abort()
		return
	}
	respond.Success(c, http.StatusOK, gin.H{"message": "Blog deleted successfully"})
}
