// PostgREST record-store client.
//
// Operations are generic over tables: callers pass the table name, a filter
// set in PostgREST operator syntax (eq., cs., ...), and a destination to
// decode rows into. Single-row reads use the PostgREST single-object
// representation, which yields the PGRST116 error code on a miss; callers
// translate that sentinel (and constraint codes such as 23505) into domain
// errors before the terminal classifier runs.
package supabase

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-resty/resty/v2"
)

// Store-specific error codes surfaced by the record store.
const (
	// CodeNoRows is returned by the store when a single-row read matches
	// nothing.
	CodeNoRows = "PGRST116"
	// CodeUniqueViolation is the store's unique-constraint violation code.
	CodeUniqueViolation = "23505"
	// CodeForeignKeyViolation is the store's foreign-key violation code.
	CodeForeignKeyViolation = "23503"
)

// acceptSingle asks PostgREST for exactly one object instead of an array.
const acceptSingle = "application/vnd.pgrst.object+json"

// StoreError is a structured failure returned by the record store.
type StoreError struct {
	StatusCode int
	Code       string
	Message    string
	Details    string
	Hint       string
}

// Error implements the error interface.
func (e *StoreError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("record store: %s (code %s)", e.Message, e.Code)
	}
	return "record store: " + e.Message
}

// IsNoRows reports whether err is the store's "no row" sentinel.
func IsNoRows(err error) bool {
	se, ok := err.(*StoreError)
	return ok && se.Code == CodeNoRows
}

// Filters maps column names to PostgREST operator expressions
// (e.g. {"region": "eq.Ladakh"}).
type Filters map[string]string

// Eq builds an equality filter expression.
func Eq(v string) string { return "eq." + v }

// Cs builds an array-contains filter expression for the given elements.
func Cs(vals []string) string { return "cs.{" + strings.Join(vals, ",") + "}" }

// ListQuery describes a filtered, ordered, paginated list read.
type ListQuery struct {
	Filters Filters
	Order   string // e.g. "created_at.desc"
	Limit   int
	Offset  int
}

// Store is the PostgREST client. It is safe for concurrent use.
type Store struct {
	c *resty.Client
}

// NewStore constructs a record-store client authorized with the service
// key.
func NewStore(cfg Config) *Store {
	c := newClient(cfg.URL+"/rest/v1", cfg.ServiceKey, cfg.Timeout).
		SetAuthToken(cfg.ServiceKey)
	return &Store{c: c}
}

// SelectOne reads exactly one row matching filters into dest. A miss yields
// a *StoreError with CodeNoRows.
func (s *Store) SelectOne(ctx context.Context, table string, filters Filters, dest any) error {
	resp, err := s.c.R().
		SetContext(ctx).
		SetHeader("Accept", acceptSingle).
		SetQueryParam("select", "*").
		SetQueryParams(filters).
		SetResult(dest).
		Get("/" + table)
	if err != nil {
		return fmt.Errorf("select %s: %w", table, err)
	}
	return storeError(resp)
}

// SelectList reads a page of rows matching q into dest and returns the
// exact total row count for the filter set.
func (s *Store) SelectList(ctx context.Context, table string, q ListQuery, dest any) (int64, error) {
	req := s.c.R().
		SetContext(ctx).
		SetHeader("Prefer", "count=exact").
		SetQueryParam("select", "*").
		SetQueryParams(q.Filters).
		SetResult(dest)
	if q.Order != "" {
		req.SetQueryParam("order", q.Order)
	}
	if q.Limit > 0 {
		req.SetQueryParam("limit", strconv.Itoa(q.Limit))
		req.SetQueryParam("offset", strconv.Itoa(q.Offset))
	}

	resp, err := req.Get("/" + table)
	if err != nil {
		return 0, fmt.Errorf("select %s: %w", table, err)
	}
	if err := storeError(resp); err != nil {
		return 0, err
	}
	return totalFromContentRange(resp.Header().Get("Content-Range")), nil
}

// Insert writes one row and decodes the stored representation into dest.
func (s *Store) Insert(ctx context.Context, table string, body, dest any) error {
	resp, err := s.c.R().
		SetContext(ctx).
		SetHeader("Accept", acceptSingle).
		SetHeader("Prefer", "return=representation").
		SetBody(body).
		SetResult(dest).
		Post("/" + table)
	if err != nil {
		return fmt.Errorf("insert %s: %w", table, err)
	}
	return storeError(resp)
}

// UpdateOne patches the single row matching filters and decodes the updated
// representation into dest. A miss yields a *StoreError with CodeNoRows.
func (s *Store) UpdateOne(ctx context.Context, table string, filters Filters, patch, dest any) error {
	resp, err := s.c.R().
		SetContext(ctx).
		SetHeader("Accept", acceptSingle).
		SetHeader("Prefer", "return=representation").
		SetQueryParams(filters).
		SetBody(patch).
		SetResult(dest).
		Patch("/" + table)
	if err != nil {
		return fmt.Errorf("update %s: %w", table, err)
	}
	return storeError(resp)
}

// Delete removes all rows matching filters and returns the exact number
// removed.
func (s *Store) Delete(ctx context.Context, table string, filters Filters) (int64, error) {
	resp, err := s.c.R().
		SetContext(ctx).
		SetHeader("Prefer", "count=exact").
		SetQueryParams(filters).
		Delete("/" + table)
	if err != nil {
		return 0, fmt.Errorf("delete %s: %w", table, err)
	}
	if err := storeError(resp); err != nil {
		return 0, err
	}
	return totalFromContentRange(resp.Header().Get("Content-Range")), nil
}

// storeError maps a non-2xx PostgREST response to a *StoreError.
func storeError(resp *resty.Response) error {
	if resp.IsSuccess() {
		return nil
	}

	se := &StoreError{StatusCode: resp.StatusCode()}
	var body struct {
		Message string `json:"message"`
		Code    string `json:"code"`
		Details string `json:"details"`
		Hint    string `json:"hint"`
	}
	if err := json.Unmarshal(resp.Body(), &body); err == nil && (body.Message != "" || body.Code != "") {
		se.Code = body.Code
		se.Message = body.Message
		se.Details = body.Details
		se.Hint = body.Hint
		return se
	}

	se.Message = strings.TrimSpace(string(resp.Body()))
	if se.Message == "" {
		se.Message = http.StatusText(resp.StatusCode())
	}
	return se
}

// totalFromContentRange extracts the total from a "0-9/57" style
// Content-Range header, returning 0 when absent or unparsable.
func totalFromContentRange(h string) int64 {
	i := strings.LastIndexByte(h, '/')
	if i < 0 {
		return 0
	}
	total := h[i+1:]
	if total == "*" {
		return 0
	}
	n, err := strconv.ParseInt(total, 10, 64)
	if err != nil {
		return 0
	}
	return n
}
