package service

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

const (
	letterTilePrefix = "tile-"
	letterTileExt    = ".png"
)

var errTileServiceMissing = errors.New("tile service is not configured")

// TileService renders the honeycomb-style letter tiles shown next to a quiz
// word. Tiles are generated once per letter and reused from disk.
type TileService struct {
	tilesDir string
}

func NewTileService(tilesDir string) (*TileService, error) {
	if strings.TrimSpace(tilesDir) == "" {
		return nil, errors.New("tiles directory is required")
	}
	if err := os.MkdirAll(tilesDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create tiles directory: %w", err)
	}
	return &TileService{tilesDir: tilesDir}, nil
}

// EnsureLetterTile returns the public URL of the tile for the word's first
// letter, rendering and persisting it on first use.
func (s *TileService) EnsureLetterTile(word string) (string, error) {
	if s == nil {
		return "", errTileServiceMissing
	}

	glyph, key := resolveTileGlyph(word)
	if glyph == "" || key == "" {
		return "", nil
	}

	filename := fmt.Sprintf("%s%s%s", letterTilePrefix, key, letterTileExt)
	filePath := filepath.Join(s.tilesDir, filename)
	url := "/tiles/" + filename

	if _, err := os.Stat(filePath); err == nil {
		return url, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return "", err
	}

	img, err := renderLetterTile(glyph)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", err
	}

	tmp, err := os.CreateTemp(s.tilesDir, filename+".tmp-*")
	if err != nil {
		return "", err
	}

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", err
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", err
	}

	if err := os.Rename(tmp.Name(), filePath); err != nil {
		if errors.Is(err, os.ErrExist) {
			os.Remove(tmp.Name())
			return url, nil
		}
		os.Remove(tmp.Name())
		return "", err
	}

	return url, nil
}

func resolveTileGlyph(word string) (string, string) {
	trimmed := strings.TrimSpace(word)
	if trimmed == "" {
		return "", ""
	}

	r, _ := utf8.DecodeRuneInString(trimmed)
	if r == utf8.RuneError {
		return "", ""
	}

	glyph := strings.ToUpper(string(r))
	key := strings.ToLower(glyph)

	if len(key) != 1 || key[0] < 'a' || key[0] > 'z' {
		key = fmt.Sprintf("u%x", r)
	}

	return glyph, key
}

func renderLetterTile(letter string) (image.Image, error) {
	const size = 192

	img := image.NewRGBA(image.Rect(0, 0, size, size))
	// Bee yellow on near-black, matching the site theme.
	background := color.RGBA{R: 24, G: 24, B: 27, A: 255}
	foreground := color.RGBA{R: 250, G: 204, B: 21, A: 255}
	draw.Draw(img, img.Bounds(), &image.Uniform{background}, image.Point{}, draw.Src)

	face, err := loadTileFace(float64(size) * 0.55)
	if err != nil {
		return nil, err
	}

	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(foreground),
		Face: face,
	}

	bounds, _ := font.BoundString(face, letter)
	textWidth := (bounds.Max.X - bounds.Min.X).Ceil()
	textHeight := (bounds.Max.Y - bounds.Min.Y).Ceil()

	x := (size - textWidth) / 2
	verticalAdjust := int(math.Round(float64(size) * 0.05))
	y := (size+textHeight)/2 - verticalAdjust

	d.Dot = fixed.P(x, y)
	d.DrawString(letter)

	return img, nil
}

func loadTileFace(size float64) (font.Face, error) {
	fontData, err := opentype.Parse(gomono.TTF)
	if err != nil {
		return nil, err
	}

	return opentype.NewFace(fontData, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
}
