package route

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

// sections はトップレベルの各セクション名（/<name> → <name>/index.html）
var sections = []string{
	"wallet", "spawn", "store", "vault", "dns", "email", "ring", "cron",
	"pipe", "pay", "mem", "infer", "watch", "browse", "auth", "code",
	"trace", "docs", "pins", "seek", "mart", "hive", "ads", "ship",
	"hands", "id", "corp",
}

// IndexFile は各セクションのページファイル名
const IndexFile = "index.html"

// LLMSFile はLLM向け案内ファイルの名前
const LLMSFile = "llms.txt"

// DefaultRoutes は組み込みのルートテーブルを返す
// 値はサイトルートからの相対パス
func DefaultRoutes() map[string]string {
	routes := make(map[string]string, len(sections)+1)
	routes["/"] = filepath.Join("agentstack", IndexFile)
	for _, name := range sections {
		routes["/"+name] = filepath.Join(name, IndexFile)
	}
	return routes
}

// Table は正規パスから絶対ファイルパスへの不変の対応表
type Table struct {
	root   string
	routes map[string]string
}

// NewTable はサイトルートと相対パスの対応表からTableを構築する
func NewTable(root string, routes map[string]string) (*Table, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("サイトルートの解決に失敗: %w", err)
	}

	resolved := make(map[string]string, len(routes))
	for key, rel := range routes {
		if !strings.HasPrefix(key, "/") {
			return nil, fmt.Errorf("ルートは / で始まる必要があります: %q", key)
		}
		if key != "/" && strings.HasSuffix(key, "/") {
			return nil, fmt.Errorf("ルートの末尾にスラッシュは使えません: %q", key)
		}
		if !filepath.IsLocal(rel) {
			return nil, fmt.Errorf("ルート %q のファイルがサイトルートの外を指しています: %q", key, rel)
		}
		resolved[key] = filepath.Join(absRoot, rel)
	}

	return &Table{root: absRoot, routes: resolved}, nil
}

// Root はサイトルートの絶対パスを返す
func (t *Table) Root() string {
	return t.root
}

// Lookup は正規化済みパスに対応するファイルを返す（存在確認はしない）
func (t *Table) Lookup(path string) (string, bool) {
	file, ok := t.routes[path]
	return file, ok
}

// Paths は登録済みのパスをソートして返す
func (t *Table) Paths() []string {
	paths := make([]string, 0, len(t.routes))
	for p := range t.routes {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Len は登録済みルートの数
func (t *Table) Len() int {
	return len(t.routes)
}
