package services

import (
	"context"

	"github.com/Rigzin00/HHTrails-BE/internal/apperr"
	"github.com/Rigzin00/HHTrails-BE/internal/domain"
	"github.com/Rigzin00/HHTrails-BE/internal/supabase"
)

const tableBlogs = "blogs"

// blogRow is the record store's shape for a blog post.
type blogRow struct {
	ID                 string `json:"id"`
	Category           string `json:"category"`
	CoverImageURL      string `json:"cover_image_url"`
	Title              string `json:"title"`
	ShortDescription   string `json:"short_description"`
	Content            string `json:"content"`
	AuthorName         string `json:"author_name"`
	PublishedDate      string `json:"published_date"`
	ReadingTimeMinutes int    `json:"reading_time_minutes"`
	CreatedAt          string `json:"created_at"`
	UpdatedAt          string `json:"updated_at"`
}

func (r blogRow) toDomain() domain.Blog {
	return domain.Blog{
		ID:                 r.ID,
		Category:           r.Category,
		CoverImageURL:      r.CoverImageURL,
		Title:              r.Title,
		ShortDescription:   r.ShortDescription,
		Content:            r.Content,
		AuthorName:         r.AuthorName,
		PublishedDate:      r.PublishedDate,
		ReadingTimeMinutes: r.ReadingTimeMinutes,
		CreatedAt:          r.CreatedAt,
		UpdatedAt:          r.UpdatedAt,
	}
}

// CreateBlogInput is the payload for publishing a blog post. An omitted
// published date falls back to the store's default of the current date.
type CreateBlogInput struct {
	Category           string `json:"category" validate:"required"`
	CoverImageURL      string `json:"coverImageUrl" validate:"required,url"`
	Title              string `json:"title" validate:"required,max=300"`
	ShortDescription   string `json:"shortDescription" validate:"required"`
	Content            string `json:"content" validate:"required"`
	AuthorName         string `json:"authorName" validate:"required"`
	PublishedDate      string `json:"publishedDate" validate:"omitempty,datetime=2006-01-02"`
	ReadingTimeMinutes int    `json:"readingTimeMinutes" validate:"required,gt=0"`
}

// UpdateBlogInput is the partial payload for updating a blog post.
type UpdateBlogInput struct {
	Category           *string `json:"category" validate:"omitempty,min=1"`
	CoverImageURL      *string `json:"coverImageUrl" validate:"omitempty,url"`
	Title              *string `json:"title" validate:"omitempty,min=1,max=300"`
	ShortDescription   *string `json:"shortDescription" validate:"omitempty,min=1"`
	Content            *string `json:"content" validate:"omitempty,min=1"`
	AuthorName         *string `json:"authorName" validate:"omitempty,min=1"`
	PublishedDate      *string `json:"publishedDate" validate:"omitempty,datetime=2006-01-02"`
	ReadingTimeMinutes *int    `json:"readingTimeMinutes" validate:"omitempty,gt=0"`
}

// ListBlogsQuery carries the parsed blog filters and paging.
type ListBlogsQuery struct {
	Category string
	Page     int
	Limit    int
}

// BlogService manages published blog posts.
type BlogService struct {
	store RecordStore
}

// NewBlogService constructs a BlogService backed by store.
func NewBlogService(store RecordStore) *BlogService {
	return &BlogService{store: store}
}

// Create publishes a new blog post.
func (s *BlogService) Create(ctx context.Context, in CreateBlogInput) (domain.Blog, error) {
	body := map[string]any{
		"category":             in.Category,
		"cover_image_url":      in.CoverImageURL,
		"title":                in.Title,
		"short_description":    in.ShortDescription,
		"content":              in.Content,
		"author_name":          in.AuthorName,
		"reading_time_minutes": in.ReadingTimeMinutes,
	}
	if in.PublishedDate != "" {
		body["published_date"] = in.PublishedDate
	}

	var row blogRow
	if err := s.store.Insert(ctx, tableBlogs, body, &row); err != nil {
		return domain.Blog{}, writeError(err)
	}
	return row.toDomain(), nil
}

// List returns a page of blog posts, most recently published first.
func (s *BlogService) List(ctx context.Context, q ListBlogsQuery) ([]domain.Blog, domain.Pagination, error) {
	filters := supabase.Filters{}
	if q.Category != "" {
		filters["category"] = supabase.Eq(q.Category)
	}

	var rows []blogRow
	total, err := s.store.SelectList(ctx, tableBlogs, supabase.ListQuery{
		Filters: filters,
		Order:   "published_date.desc",
		Limit:   q.Limit,
		Offset:  (q.Page - 1) * q.Limit,
	}, &rows)
	if err != nil {
		return nil, domain.Pagination{}, err
	}

	blogs := make([]domain.Blog, 0, len(rows))
	for _, r := range rows {
		blogs = append(blogs, r.toDomain())
	}
	return blogs, paginate(q.Page, q.Limit, total), nil
}

// Get returns the blog post with the given id.
func (s *BlogService) Get(ctx context.Context, id string) (domain.Blog, error) {
	var row blogRow
	if err := s.store.SelectOne(ctx, tableBlogs, supabase.Filters{"id": supabase.Eq(id)}, &row); err != nil {
		return domain.Blog{}, notFoundOr(err, "Blog not found")
	}
	return row.toDomain(), nil
}

// Update applies the set fields of in to the blog post with the given id.
func (s *BlogService) Update(ctx context.Context, id string, in UpdateBlogInput) (domain.Blog, error) {
	patch := map[string]any{}
	if in.Category != nil {
		patch["category"] = *in.Category
	}
	if in.CoverImageURL != nil {
		patch["cover_image_url"] = *in.CoverImageURL
	}
	if in.Title != nil {
		patch["title"] = *in.Title
	}
	if in.ShortDescription != nil {
		patch["short_description"] = *in.ShortDescription
	}
	if in.Content != nil {
		patch["content"] = *in.Content
	}
	if in.AuthorName != nil {
		patch["author_name"] = *in.AuthorName
	}
	if in.PublishedDate != nil {
		patch["published_date"] = *in.PublishedDate
	}
	if in.ReadingTimeMinutes != nil {
		patch["reading_time_minutes"] = *in.ReadingTimeMinutes
	}

	var row blogRow
	err := s.store.UpdateOne(ctx, tableBlogs, supabase.Filters{"id": supabase.Eq(id)}, patch, &row)
	if err != nil {
		if supabase.IsNoRows(err) {
			return domain.Blog{}, apperr.NotFound("Blog not found")
		}
		return domain.Blog{}, writeError(err)
	}
	return row.toDomain(), nil
}

// Delete removes the blog post with the given id.
func (s *BlogService) Delete(ctx context.Context, id string) error {
	n, err := s.store.Delete(ctx, tableBlogs, supabase.Filters{"id": supabase.Eq(id)})
	if err != nil {
		return err
	}
	if n == 0 {
		return apperr.NotFound("Blog not found")
	}
	return nil
}
