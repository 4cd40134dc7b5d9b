package main

import (
	"context"
	"log"

	"agentstack/internal/config"
	"agentstack/internal/metrics"
	"agentstack/internal/server"
)

func main() {
	// 設定を読み込む
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("設定の読み込みに失敗しました: %v", err)
	}

	// ルートテーブルを構築
	table, err := cfg.RouteTable()
	if err != nil {
		log.Fatalf("ルートテーブルの構築に失敗しました: %v", err)
	}

	// サーバーを作成
	srv := server.New(cfg, table, metrics.New())

	// サーバーを起動
	if err := srv.Start(context.Background()); err != nil {
		log.Fatalf("サーバーの起動に失敗しました: %v", err)
	}
}
