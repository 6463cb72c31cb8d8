package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/h2non/filetype"
	"github.com/h2non/filetype/types"
)

// MediaStorage guarda em disco os arquivos de portfólio e anexos de
// chat (imagens e vídeos).
type MediaStorage struct {
	rootPath       string
	maxUploadBytes int64
}

// NewMediaStorage cria o armazenamento de mídia.
func NewMediaStorage(rootPath string, maxUploadMB int64) (*MediaStorage, error) {
	if err := os.MkdirAll(rootPath, 0o755); err != nil {
		return nil, fmt.Errorf("storage: não foi possível criar o diretório %s: %w", rootPath, err)
	}

	return &MediaStorage{
		rootPath:       rootPath,
		maxUploadBytes: maxUploadMB * 1024 * 1024,
	}, nil
}

// Save valida o tipo real do arquivo pelo cabeçalho, grava em disco e
// devolve o caminho relativo, o mime type e o tamanho.
func (s *MediaStorage) Save(ctx context.Context, userID uuid.UUID, originalName string, r io.Reader) (string, string, int64, error) {
	if err := ctx.Err(); err != nil {
		return "", "", 0, err
	}

	// filetype decide pelos primeiros bytes, não pela extensão.
	head := make([]byte, 261)
	n, err := io.ReadFull(r, head)
	if err != nil && err != io.ErrUnexpectedEOF {
		return "", "", 0, fmt.Errorf("storage: não foi possível ler o arquivo: %w", err)
	}
	head = head[:n]

	kind, err := filetype.Match(head)
	if err != nil {
		return "", "", 0, fmt.Errorf("storage: não foi possível detectar o tipo do arquivo: %w", err)
	}
	if !isAllowed(kind) {
		return "", "", 0, fmt.Errorf("storage: tipo de arquivo não permitido (apenas imagens e vídeos)")
	}

	safeName := sanitizeFilename(originalName)
	fileName := fmt.Sprintf("%s_%d%s", userID.String(), time.Now().UnixNano(), filepath.Ext(safeName))

	userDir := filepath.Join(s.rootPath, userID.String())
	if err := os.MkdirAll(userDir, 0o755); err != nil {
		return "", "", 0, fmt.Errorf("storage: não foi possível criar o diretório do usuário: %w", err)
	}

	targetPath := filepath.Join(userDir, fileName)
	tempPath := targetPath + ".tmp"

	f, err := os.Create(tempPath)
	if err != nil {
		return "", "", 0, fmt.Errorf("storage: não foi possível criar o arquivo: %w", err)
	}
	defer f.Close()

	limited := io.LimitedReader{R: io.MultiReader(bytes.NewReader(head), r), N: s.maxUploadBytes + 1}
	written, err := io.Copy(f, &limited)
	if err != nil {
		_ = os.Remove(tempPath)
		return "", "", 0, fmt.Errorf("storage: erro ao gravar o arquivo: %w", err)
	}

	if written > s.maxUploadBytes {
		_ = os.Remove(tempPath)
		return "", "", 0, fmt.Errorf("storage: o arquivo excede o limite de %d bytes", s.maxUploadBytes)
	}

	if err := f.Close(); err != nil {
		return "", "", 0, fmt.Errorf("storage: erro ao fechar o arquivo: %w", err)
	}

	if err := os.Rename(tempPath, targetPath); err != nil {
		return "", "", 0, fmt.Errorf("storage: não foi possível renomear o arquivo: %w", err)
	}

	relative := filepath.Join(userID.String(), fileName)
	return relative, kind.MIME.Value, written, nil
}

// AbsolutePath devolve o caminho completo de um arquivo salvo.
func (s *MediaStorage) AbsolutePath(relativePath string) string {
	return filepath.Join(s.rootPath, relativePath)
}

// Delete remove um arquivo do disco.
func (s *MediaStorage) Delete(ctx context.Context, relativePath string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	target := filepath.Join(s.rootPath, relativePath)
	if err := os.Remove(target); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("storage: não foi possível remover o arquivo: %w", err)
	}
	return nil
}

// isAllowed aceita imagens e vídeos.
func isAllowed(kind types.Type) bool {
	return strings.HasPrefix(kind.MIME.Value, "image/") ||
		strings.HasPrefix(kind.MIME.Value, "video/")
}

// sanitizeFilename remove caracteres potencialmente perigosos.
func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, "..", "")
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	if name == "" {
		name = "media"
	}
	return name
}
