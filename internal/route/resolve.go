package route

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	contentTypeHTML  = "text/html; charset=utf-8"
	contentTypeText  = "text/plain; charset=utf-8"
	contentTypeOctet = "application/octet-stream"
)

// Resolution は解決されたローカルファイルとそのContent-Type
type Resolution struct {
	Path        string
	ContentType string
}

// Normalize はリクエストターゲットを正規パスに変換する
// クエリとフラグメントを捨て、末尾のスラッシュを1つだけ取り除く
func Normalize(rawPath string) string {
	if i := strings.IndexAny(rawPath, "?#"); i >= 0 {
		rawPath = rawPath[:i]
	}
	p := strings.TrimSuffix(rawPath, "/")
	if p == "" {
		return "/"
	}
	return p
}

// Resolve はリクエストパスをローカルファイルに解決する
func (t *Table) Resolve(rawPath string) (Resolution, bool) {
	p := Normalize(rawPath)

	// ルートテーブルを引き、その後で存在を確認する
	if file, ok := t.Lookup(p); ok && isRegularFile(file) {
		return newResolution(file), true
	}

	if p == "/"+LLMSFile {
		file := filepath.Join(t.root, LLMSFile)
		if isRegularFile(file) {
			return newResolution(file), true
		}
		return Resolution{}, false
	}

	if section, ok := llmsSection(p); ok {
		file := filepath.Join(t.root, section, LLMSFile)
		if isRegularFile(file) {
			return newResolution(file), true
		}
	}

	return Resolution{}, false
}

// ContentType はファイル名の拡張子からContent-Typeを推定する
func ContentType(name string) string {
	switch {
	case strings.HasSuffix(name, ".html"):
		return contentTypeHTML
	case strings.HasSuffix(name, ".txt"):
		return contentTypeText
	default:
		return contentTypeOctet
	}
}

func newResolution(file string) Resolution {
	return Resolution{Path: file, ContentType: ContentType(file)}
}

// llmsSection は /<section>/llms.txt 形式のパスからセクション名を取り出す
func llmsSection(p string) (string, bool) {
	if !strings.HasSuffix(p, "/"+LLMSFile) {
		return "", false
	}
	segments := strings.Split(strings.TrimPrefix(p, "/"), "/")
	if len(segments) != 2 || segments[1] != LLMSFile {
		return "", false
	}
	section := segments[0]
	if !validSection(section) {
		return "", false
	}
	return section, true
}

// validSection はディレクトリトラバーサルに使える名前を拒否する
func validSection(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	return !strings.ContainsAny(name, "\\\x00")
}

func isRegularFile(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}
