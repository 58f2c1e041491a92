package apiclient

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
)

// DefaultTimeout — таймаут HTTP-запроса по умолчанию.
const DefaultTimeout = 30 * time.Second

// APIError — ошибка, возвращённая API в конверте {"error": {...}}.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("API error: HTTP %d", e.StatusCode)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsNotFound проверяет, что err — ответ 404.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

type dataResponse struct {
	Data json.RawMessage `json:"data"`
}

type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// Client — HTTP-клиент для Glimpse API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New создаёт клиент. timeout <= 0 означает DefaultTimeout.
func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// --- Movies ---

// ListMovies возвращает все фильмы с категориями и жанрами.
func (c *Client) ListMovies(ctx context.Context) ([]Movie, error) {
	var movies []Movie
	err := c.get(ctx, "/movies", &movies)
	return movies, err
}

// GetMovie возвращает фильм по ID.
func (c *Client) GetMovie(ctx context.Context, id string) (*Movie, error) {
	var movie Movie
	if err := c.get(ctx, "/movies/"+url.PathEscape(id), &movie); err != nil {
		return nil, err
	}
	return &movie, nil
}

// CreateMovie создаёт фильм.
func (c *Client) CreateMovie(ctx context.Context, req CreateMovieRequest) (*Movie, error) {
	var movie Movie
	if err := c.send(ctx, http.MethodPost, "/movies", req, &movie); err != nil {
		return nil, err
	}
	return &movie, nil
}

// UpdateMovie частично обновляет фильм.
func (c *Client) UpdateMovie(ctx context.Context, id string, req UpdateMovieRequest) (*Movie, error) {
	var movie Movie
	if err := c.send(ctx, http.MethodPatch, "/movies/"+url.PathEscape(id), req, &movie); err != nil {
		return nil, err
	}
	return &movie, nil
}

// DeleteMovie помечает фильм удалённым.
func (c *Client) DeleteMovie(ctx context.Context, id string) error {
	return c.send(ctx, http.MethodDelete, "/movies/"+url.PathEscape(id), nil, nil)
}

// RestoreMovie восстанавливает удалённый фильм.
func (c *Client) RestoreMovie(ctx context.Context, id string) (*Movie, error) {
	var movie Movie
	if err := c.send(ctx, http.MethodPost, "/movies/"+url.PathEscape(id)+"/restore", nil, &movie); err != nil {
		return nil, err
	}
	return &movie, nil
}

// --- Categories ---

// ListCategories возвращает категории. Пустой typ — все категории.
func (c *Client) ListCategories(ctx context.Context, typ string) ([]Category, error) {
	path := "/categories"
	if typ != "" {
		path += "?" + url.Values{"type": {typ}}.Encode()
	}

	var categories []Category
	err := c.get(ctx, path, &categories)
	return categories, err
}

// GetCategory возвращает категорию по ID.
func (c *Client) GetCategory(ctx context.Context, id string) (*Category, error) {
	var category Category
	if err := c.get(ctx, "/categories/"+url.PathEscape(id), &category); err != nil {
		return nil, err
	}
	return &category, nil
}

// CreateCategory создаёт категорию.
func (c *Client) CreateCategory(ctx context.Context, name, typ string) (*Category, error) {
	body := Category{Name: name, Type: typ}
	var category Category
	if err := c.send(ctx, http.MethodPost, "/categories", body, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

// UpdateCategory частично обновляет категорию.
func (c *Client) UpdateCategory(ctx context.Context, id string, req UpdateCategoryRequest) (*Category, error) {
	var category Category
	if err := c.send(ctx, http.MethodPatch, "/categories/"+url.PathEscape(id), req, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

// DeleteCategory помечает категорию удалённой.
func (c *Client) DeleteCategory(ctx context.Context, id string) error {
	return c.send(ctx, http.MethodDelete, "/categories/"+url.PathEscape(id), nil, nil)
}

// RestoreCategory восстанавливает удалённую категорию.
func (c *Client) RestoreCategory(ctx context.Context, id string) (*Category, error) {
	var category Category
	if err := c.send(ctx, http.MethodPost, "/categories/"+url.PathEscape(id)+"/restore", nil, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

// ListCategoryMovies возвращает join-записи категории с подставленными фильмами.
func (c *Client) ListCategoryMovies(ctx context.Context, categoryID string) ([]MovieCategory, error) {
	var links []MovieCategory
	err := c.get(ctx, "/categories/"+url.PathEscape(categoryID)+"/movies", &links)
	return links, err
}

// LinkCategoryMovies привязывает фильмы к категории.
func (c *Client) LinkCategoryMovies(ctx context.Context, categoryID string, movieIDs []string) error {
	body := map[string][]string{"movieIds": movieIDs}
	return c.send(ctx, http.MethodPost, "/categories/"+url.PathEscape(categoryID)+"/movies", body, nil)
}

// --- Genres ---

// ListGenres возвращает все жанры.
func (c *Client) ListGenres(ctx context.Context) ([]Genre, error) {
	var genres []Genre
	err := c.get(ctx, "/genres", &genres)
	return genres, err
}

// GetGenre возвращает жанр по ID.
func (c *Client) GetGenre(ctx context.Context, id string) (*Genre, error) {
	var genre Genre
	if err := c.get(ctx, "/genres/"+url.PathEscape(id), &genre); err != nil {
		return nil, err
	}
	return &genre, nil
}

// CreateGenre создаёт жанр.
func (c *Client) CreateGenre(ctx context.Context, name string) (*Genre, error) {
	var genre Genre
	if err := c.send(ctx, http.MethodPost, "/genres", Genre{Name: name}, &genre); err != nil {
		return nil, err
	}
	return &genre, nil
}

// RenameGenre меняет имя жанра.
func (c *Client) RenameGenre(ctx context.Context, id, name string) (*Genre, error) {
	var genre Genre
	body := map[string]string{"name": name}
	if err := c.send(ctx, http.MethodPatch, "/genres/"+url.PathEscape(id), body, &genre); err != nil {
		return nil, err
	}
	return &genre, nil
}

// DeleteGenre помечает жанр удалённым.
func (c *Client) DeleteGenre(ctx context.Context, id string) error {
	return c.send(ctx, http.MethodDelete, "/genres/"+url.PathEscape(id), nil, nil)
}

// RestoreGenre восстанавливает удалённый жанр.
func (c *Client) RestoreGenre(ctx context.Context, id string) (*Genre, error) {
	var genre Genre
	if err := c.send(ctx, http.MethodPost, "/genres/"+url.PathEscape(id)+"/restore", nil, &genre); err != nil {
		return nil, err
	}
	return &genre, nil
}

// ListGenreMovies возвращает фильмы жанра.
func (c *Client) ListGenreMovies(ctx context.Context, genreID string) ([]Movie, error) {
	var movies []Movie
	err := c.get(ctx, "/genres/"+url.PathEscape(genreID)+"/movies", &movies)
	return movies, err
}

// LinkGenreMovies привязывает фильмы к жанру.
func (c *Client) LinkGenreMovies(ctx context.Context, genreID string, movieIDs []string) error {
	body := map[string][]string{"movieIds": movieIDs}
	return c.send(ctx, http.MethodPost, "/genres/"+url.PathEscape(genreID)+"/movies", body, nil)
}

// --- Join records ---

// ListMovieCategories возвращает все связи фильм ↔ категория.
func (c *Client) ListMovieCategories(ctx context.Context) ([]MovieCategory, error) {
	var links []MovieCategory
	err := c.get(ctx, "/movieCategories", &links)
	return links, err
}

// ListMovieGenres возвращает все связи фильм ↔ жанр.
func (c *Client) ListMovieGenres(ctx context.Context) ([]MovieGenre, error) {
	var links []MovieGenre
	err := c.get(ctx, "/movieGenres", &links)
	return links, err
}

// --- HTTP helpers ---

func (c *Client) get(ctx context.Context, path string, result any) error {
	return c.send(ctx, http.MethodGet, path, nil, result)
}

// send выполняет запрос и распаковывает поле data ответа в result.
// result == nil — тело ответа игнорируется.
func (c *Client) send(ctx context.Context, method, path string, body, result any) error {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if err := checkError(resp); err != nil {
		return err
	}

	if result == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	var dr dataResponse
	if err := json.NewDecoder(resp.Body).Decode(&dr); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	if err := json.Unmarshal(dr.Data, result); err != nil {
		return fmt.Errorf("decode data: %w", err)
	}
	return nil
}

func checkError(resp *http.Response) error {
	if resp.StatusCode < 400 {
		return nil
	}

	apiErr := &APIError{StatusCode: resp.StatusCode}
	var er errorResponse
	if err := json.NewDecoder(resp.Body).Decode(&er); err == nil {
		apiErr.Code = er.Error.Code
		apiErr.Message = er.Error.Message
	}
	return apiErr
}
