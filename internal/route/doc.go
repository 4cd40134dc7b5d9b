// Package route は公開URLパスとローカルファイルの対応表を管理する
//
// # 責務
// - 起動時に一度だけ構築される不変のルートテーブルの提供
// - リクエストパスの正規化（クエリ・フラグメント除去、末尾スラッシュ1つの除去）
// - 正規化済みパスからローカルファイルへの解決
// - ファイル名からのContent-Type推定
//
// # 仕様
//   - ルートテーブルの参照と存在確認は別の手順として行う
//   - /llms.txt はサイトルート直下の llms.txt に解決する
//   - /<section>/llms.txt はセクション直下の llms.txt に解決する（2セグメントのみ）
//   - "." や ".." などのセクション名は常に解決失敗とする
//   - Table は構築後に変更されないため、ロックなしで並行に参照できる
package route
