// Package server は、サイトを配信するHTTPサーバーを管理します。
//
// このパッケージは、HTTPサーバーの起動、ルーティング、
// ルートテーブルに基づく静的ファイルの配信を担当します。
//
// 責務:
//   - HTTPサーバーの起動と管理
//   - リクエストパスの解決とファイルの配信
//   - 運用向けリスナー（/metrics, /healthz）の起動
//
// 仕様:
//   - ルーティングにはgin-gonic/ginを使用
//   - アクセスログは出力しない
//   - 応答は 200（ファイル本文）と 404（空の本文）のみ。GET以外は 405
//   - ファイルはリクエストごとにディスクから読み直す
//   - SO_REUSEADDR を設定してリッスンする（unix系のみ）
//   - グレースフルシャットダウンに対応
package server
