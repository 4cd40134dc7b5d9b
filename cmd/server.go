// Package main はサイトサーバーコマンドの実装です
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"agentstack/internal/config"
	"agentstack/internal/metrics"
	"agentstack/internal/server"
)

func main() {
	// コマンドラインオプション
	var (
		host        = flag.String("host", "", "サーバーのホスト (デフォルト: 0.0.0.0)")
		port        = flag.Int("port", 0, "サーバーのポート (デフォルト: 8892)")
		root        = flag.String("root", "", "サイトルートのディレクトリ (デフォルト: .)")
		configPath  = flag.String("config", "", "YAML設定ファイルのパス")
		metricsAddr = flag.String("metrics", "", "運用リスナーのアドレス (例: 127.0.0.1:9892)")
		help        = flag.Bool("help", false, "ヘルプを表示")
	)

	flag.Parse()

	// ヘルプ表示
	if *help {
		fmt.Println("agentstack site server")
		fmt.Println()
		fmt.Println("使用方法:")
		fmt.Println("  server [オプション]")
		fmt.Println()
		fmt.Println("オプション:")
		flag.PrintDefaults()
		os.Exit(0)
	}

	// 設定を読み込む
	cfg, err := config.LoadWithFile(*configPath)
	if err != nil {
		log.Fatalf("設定の読み込みに失敗しました: %v", err)
	}

	// コマンドラインオプションで設定を上書き
	if *host != "" {
		cfg.Server.Host = *host
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}
	if *root != "" {
		cfg.Site.Root = *root
	}
	if *metricsAddr != "" {
		cfg.Metrics.Addr = *metricsAddr
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("設定が不正です: %v", err)
	}

	table, err := cfg.RouteTable()
	if err != nil {
		log.Fatalf("ルートテーブルの構築に失敗しました: %v", err)
	}

	srv := server.New(cfg, table, metrics.New())

	// サーバーを起動
	log.Printf("サイトサーバーを起動します: %s (サイトルート: %s)", cfg.ServerAddress(), table.Root())
	if err := srv.Start(context.Background()); err != nil {
		log.Fatalf("サーバーの起動に失敗しました: %v", err)
	}
}
