package blogtok

import (
	"bytes"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

const (
	maxImageWidth = 800
	jpegQuality   = 80
	uploadsSubdir = "uploads"
	imageField    = "image"
)

// processImage decodes an image from src, resizes it down to maxImageWidth
// if it is wider, and encodes it as JPEG.
func processImage(src io.Reader) ([]byte, error) {
	img, _, err := image.Decode(src)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	if w > maxImageWidth {
		newH := h * maxImageWidth / w
		dst := image.NewRGBA(image.Rect(0, 0, maxImageWidth, newH))
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
		img = dst
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}

// uploadName returns a file name that is unique across uploads:
// image-<unix millis>-<random hex>.jpg.
func uploadName(now time.Time) (string, error) {
	var b [4]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "", err
	}
	return imageField + "-" + strconv.FormatInt(now.UnixMilli(), 10) + "-" + hex.EncodeToString(b[:]) + ".jpg", nil
}

// readArticleInput reads the article fields from a multipart form or a
// JSON body.
func (a *App) readArticleInput(c echo.Context) (ArticleInput, error) {
	var in ArticleInput
	ctype := c.Request().Header.Get(echo.HeaderContentType)
	if strings.HasPrefix(ctype, echo.MIMEApplicationJSON) {
		if err := bindJSON(c, &in); err != nil {
			return in, err
		}
		return in, nil
	}

	in.Title = c.FormValue("title")
	in.Content = c.FormValue("content")
	in.Excerpt = c.FormValue("excerpt")
	in.ReadTime = c.FormValue("read_time")
	if raw := strings.TrimSpace(c.FormValue("category_id")); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return in, validationf("invalid category_id %q", raw)
		}
		in.CategoryID = &id
	}
	return in, nil
}

// saveUploadedImage processes the optional "image" form file and writes it
// under the uploads directory. It returns the stored reference, relative to
// the static dir, or "" when no file was sent.
func (a *App) saveUploadedImage(c echo.Context) (string, error) {
	if !strings.HasPrefix(c.Request().Header.Get(echo.HeaderContentType), echo.MIMEMultipartForm) {
		return "", nil
	}
	file, err := c.FormFile(imageField)
	if errors.Is(err, http.ErrMissingFile) {
		return "", nil
	}
	if err != nil {
		return "", validationf("read image: %v", err)
	}
	if file.Size > a.Config.MaxUploadBytes {
		return "", validationf("image too large (max %d bytes)", a.Config.MaxUploadBytes)
	}

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	data, err := processImage(src)
	if err != nil {
		return "", validationf("invalid image: %v", err)
	}

	name, err := uploadName(time.Now())
	if err != nil {
		return "", err
	}
	dir := filepath.Join(a.Config.StaticDir, uploadsSubdir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create uploads dir: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
		return "", fmt.Errorf("write image: %w", err)
	}
	return path.Join(uploadsSubdir, name), nil
}

// removeUpload deletes an image written for an article that was never stored.
func (a *App) removeUpload(ref string) {
	if ref == "" {
		return
	}
	if err := os.Remove(filepath.Join(a.Config.StaticDir, filepath.FromSlash(ref))); err != nil && !errors.Is(err, os.ErrNotExist) {
		a.log.Warn().Err(err).Str("image", ref).Msg("remove orphaned upload")
	}
}
