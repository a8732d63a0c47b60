// Package main provides localization for the camrecord CLI.
package main

import (
	"github.com/ideamans/go-l10n"
)

func init() {
	// Register German translations for CLI messages.
	l10n.Register("de", l10n.LexiconMap{
		// Flag categories
		"Configuration": "Konfiguration",
		"Logging":       "Protokoll",
		"Encoding":      "Kodierung",
		"Cameras":       "Kameras",
		"Monitoring":    "Überwachung",

		// Root command
		"Camera recording and simulation tool": "Kamera-Aufnahme und Simulations-Tool",
		"Error: %v":                            "Fehler: %v",

		// Global flags
		"YAML configuration file":                                "YAML-Konfigurationsdatei",
		"Log level (debug, info, warn, error)":                   "Protokollstufe (debug, info, warn, error)",
		"Suppress all log output":                                "Alle Protokollausgaben unterdrücken",
		"Prefix log lines with the time of day":                  "Protokollzeilen mit der Uhrzeit versehen",
		"  Encoder: %s":                                          "  Encoder: %s",
		"Decoder: %s":                                            "Decoder: %s",
		"%s (fallback from %s)":                                  "%s (Ersatz für %s)",
		"%s (fallback)":                                          "%s (Ersatz)",
		"Raw sensor detected, debayering in GStreamer":           "Rohsensor erkannt, Debayering in GStreamer",
		"Standard camera via %s":                                 "Standardkamera über %s",
		"%dx%d, %.1fs, %d frames, recorded %s":                   "%dx%d, %.1fs, %d Bilder, aufgenommen %s",
		"Encoder backend (auto, gstreamer, ffmpeg)":              "Encoder-Backend (auto, gstreamer, ffmpeg)",
		"Path to the ffmpeg executable":                          "Pfad zur ffmpeg-Programmdatei",
		"Disable the raw Bayer sensor pipeline":                  "Bayer-Rohsensor-Pipeline deaktivieren",
		"Serve status and metrics on this address (e.g., :8080)": "Status und Metriken unter dieser Adresse bereitstellen (z.B. :8080)",
		"Directory for preview snapshots":                        "Verzeichnis für Vorschaubilder",

		// Command flags
		"Output directory":                                      "Ausgabe-Verzeichnis",
		"Recordings directory":                                  "Aufnahme-Verzeichnis",
		"Frames per second":                                     "Frames pro Sekunde",
		"Recording duration in seconds":                         "Aufnahmedauer in Sekunden",
		"Camera index (0, 1, ...)":                              "Kamera-Index (0, 1, ...)",
		"Virtual camera ID (0 or 1)":                            "Virtuelle Kamera ID (0 oder 1)",
		"Test duration in seconds":                              "Testdauer in Sekunden",
		"Simulation duration in seconds":                        "Simulationsdauer in Sekunden",
		"Left camera index":                                     "Index der linken Kamera",
		"Right camera index":                                    "Index der rechten Kamera",
		"Use virtual cameras":                                   "Virtuelle Kameras verwenden",
		"Replay the recordings in this directory":               "Aufnahmen aus diesem Verzeichnis abspielen",
		"Recording duration in seconds (0 = until interrupted)": "Aufnahmedauer in Sekunden (0 = bis zum Abbruch)",

		// Commands
		"List all available real cameras":        "Listet alle verfügbaren echten Kameras auf",
		"Record from a real camera":              "Nimmt von einer echten Kamera auf",
		"Start a virtual camera and record it":   "Startet virtuelle Kamera-Simulation und nimmt auf",
		"Record two sources at once":             "Nimmt zwei Quellen gleichzeitig auf",
		"List all recordings":                    "Listet alle Aufnahmen auf",
		"Play a recording":                       "Spielt eine Aufnahme ab",
		"Replay two recordings as a stereo pair": "Spielt zwei Aufnahmen als Stereopaar ab",
		"Test two virtual cameras":               "Testet zwei virtuelle Kameras",
		"Record two real cameras (--left, --right), two virtual cameras (--virtual) or the recordings of a directory (--playback). A session summary is written next to the recordings.": "Nimmt zwei echte Kameras (--left, --right), zwei virtuelle Kameras (--virtual) oder die Aufnahmen eines Verzeichnisses (--playback) auf. Eine Sitzungszusammenfassung wird neben die Aufnahmen geschrieben.",

		// Camera listing
		"Searching for available cameras...": "Suche nach verfügbaren Kameras...",
		"No cameras found!":                  "Keine Kameras gefunden!",
		"Found cameras:":                     "Gefundene Kameras:",
		"  - Camera %d":                      "  - Kamera %d",

		// Recording
		"Opening camera %d...":               "Öffne Kamera %d...",
		"Starting virtual camera %d...":      "Starte virtuelle Kamera %d...",
		"Virtual camera ID must be 0 or 1":   "Virtuelle Kamera ID muss 0 oder 1 sein!",
		"Recording for %d seconds...":        "Starte Aufnahme für %d Sekunden...",
		"Recorded: %d frames":                "Aufgenommen: %d frames",
		"Recorded: left %d, right %d frames": "Aufgenommen: links %d, rechts %d Frames",
		"Stopping recording...":              "Stoppe Aufnahme...",
		"Could not read frame: %v":           "Fehler beim Lesen des Frames: %v",
		"Recording complete!":                "Aufnahme abgeschlossen!",
		"  File: %s":                         "  Datei: %s",
		"  Duration: %.2fs":                  "  Dauer: %.2fs",
		"  Frames: %d":                       "  Frames: %d",
		"  Session: %s":                      "  Sitzung: %s",
		"  Skipped on %s: %d":                "  Übersprungen (%s): %d",
		"  Error: %v":                        "  Fehler: %v",
		"  Summary: %s":                      "  Zusammenfassung: %s",
		"Specify --left and --right, --virtual or --playback": "--left und --right, --virtual oder --playback angeben",

		// Virtual camera test
		"Starting test with two virtual cameras...": "Starte Test mit zwei virtuellen Kameras...",
		"Virtual cameras created:":                  "Virtuelle Kameras erstellt:",
		"  - Camera %d (%dx%d @ %d FPS)":            "  - Kamera %d (%dx%d @ %d FPS)",
		"Generating frames for %d seconds...":       "Generiere Frames für %d Sekunden...",
		"Error on camera %d: %v":                    "Fehler bei Kamera %d: %v",
		"Test complete!":                            "Test abgeschlossen!",
		"  Camera %d: %d frames generated":          "  Kamera %d: %d Frames generiert",

		// Playback
		"Recordings in %s:":                            "Aufnahmen in %s:",
		"  No recordings found!":                       "  Keine Aufnahmen gefunden!",
		"File name of the recording is required":       "Dateiname der Aufnahme erforderlich",
		"Loading video: %s":                            "Lade Video: %s",
		"Restart at the end of the file until stopped": "Am Dateiende neu starten, bis gestoppt",
		"Video duration: %.2f seconds":                 "Video-Dauer: %.2f Sekunden",
		"Playing: %.0f%% (frame %d/%d)":                "Wiedergabe: %.0f%% (Frame %d/%d)",
		"Playback finished: %d frames":                 "Wiedergabe beendet: %d Frames",
		"Simulating stereo cameras for %d seconds...":  "Simuliere Stereokameras für %d Sekunden...",
		"Simulation finished: %d frame pairs":          "Simulation beendet: %d Framepaare",
	})

	// Register Japanese translations for CLI messages.
	l10n.Register("ja", l10n.LexiconMap{
		"Configuration": "設定",
		"Logging":       "ログ",
		"Encoding":      "エンコード",
		"Cameras":       "カメラ",
		"Monitoring":    "モニタリング",

		"Camera recording and simulation tool": "カメラ録画とシミュレーションのツール",
		"Error: %v":                            "エラー: %v",

		"YAML configuration file":                                "YAML設定ファイル",
		"Log level (debug, info, warn, error)":                   "ログレベル（debug, info, warn, error）",
		"Suppress all log output":                                "全てのログ出力を抑制",
		"Prefix log lines with the time of day":                  "ログ行に時刻を付ける",
		"  Encoder: %s":                                          "  エンコーダー: %s",
		"Decoder: %s":                                            "デコーダー: %s",
		"%s (fallback from %s)":                                  "%s (%s の代替)",
		"%s (fallback)":                                          "%s (代替)",
		"Raw sensor detected, debayering in GStreamer":           "RAWセンサーを検出、GStreamerでデベイヤー処理",
		"Standard camera via %s":                                 "%s 経由の標準カメラ",
		"%dx%d, %.1fs, %d frames, recorded %s":                   "%dx%d, %.1f秒, %dフレーム, 録画日時 %s",
		"Encoder backend (auto, gstreamer, ffmpeg)":              "エンコーダ（auto, gstreamer, ffmpeg）",
		"Path to the ffmpeg executable":                          "ffmpeg実行ファイルのパス",
		"Disable the raw Bayer sensor pipeline":                  "Bayerセンサーのパイプラインを無効化",
		"Serve status and metrics on this address (e.g., :8080)": "このアドレスでステータスとメトリクスを提供（例: :8080）",
		"Directory for preview snapshots":                        "プレビュースナップショットのディレクトリ",

		"Output directory":                                      "出力ディレクトリ",
		"Recordings directory":                                  "録画ディレクトリ",
		"Frames per second":                                     "フレームレート",
		"Recording duration in seconds":                         "録画時間（秒）",
		"Camera index (0, 1, ...)":                              "カメラ番号（0, 1, ...）",
		"Virtual camera ID (0 or 1)":                            "仮想カメラID（0 または 1）",
		"Test duration in seconds":                              "テスト時間（秒）",
		"Simulation duration in seconds":                        "シミュレーション時間（秒）",
		"Left camera index":                                     "左カメラの番号",
		"Right camera index":                                    "右カメラの番号",
		"Use virtual cameras":                                   "仮想カメラを使用",
		"Replay the recordings in this directory":               "このディレクトリの録画を再生",
		"Recording duration in seconds (0 = until interrupted)": "録画時間（秒、0 = 中断まで）",

		"List all available real cameras":        "利用可能なカメラを一覧表示",
		"Record from a real camera":              "カメラから録画",
		"Start a virtual camera and record it":   "仮想カメラを起動して録画",
		"Record two sources at once":             "2つのソースを同時に録画",
		"List all recordings":                    "録画を一覧表示",
		"Play a recording":                       "録画を再生",
		"Replay two recordings as a stereo pair": "2つの録画をステレオペアとして再生",
		"Test two virtual cameras":               "2つの仮想カメラをテスト",
		"Record two real cameras (--left, --right), two virtual cameras (--virtual) or the recordings of a directory (--playback). A session summary is written next to the recordings.": "2台のカメラ（--left, --right）、2つの仮想カメラ（--virtual）、またはディレクトリ内の録画（--playback）を録画します。セッション概要は録画と同じ場所に保存されます。",

		"Searching for available cameras...": "利用可能なカメラを検索中...",
		"No cameras found!":                  "カメラが見つかりません",
		"Found cameras:":                     "見つかったカメラ:",
		"  - Camera %d":                      "  - カメラ %d",

		"Opening camera %d...":               "カメラ %d を開いています...",
		"Starting virtual camera %d...":      "仮想カメラ %d を起動中...",
		"Virtual camera ID must be 0 or 1":   "仮想カメラIDは 0 または 1 です",
		"Recording for %d seconds...":        "%d 秒間録画します...",
		"Recorded: %d frames":                "録画済み: %d フレーム",
		"Recorded: left %d, right %d frames": "録画済み: 左 %d, 右 %d フレーム",
		"Stopping recording...":              "録画を停止中...",
		"Could not read frame: %v":           "フレームを読み取れません: %v",
		"Recording complete!":                "録画が完了しました",
		"  File: %s":                         "  ファイル: %s",
		"  Duration: %.2fs":                  "  時間: %.2f秒",
		"  Frames: %d":                       "  フレーム数: %d",
		"  Session: %s":                      "  セッション: %s",
		"  Skipped on %s: %d":                "  スキップ（%s）: %d",
		"  Error: %v":                        "  エラー: %v",
		"  Summary: %s":                      "  概要: %s",
		"Specify --left and --right, --virtual or --playback": "--left と --right、--virtual、または --playback を指定してください",

		"Starting test with two virtual cameras...": "2つの仮想カメラでテストを開始...",
		"Virtual cameras created:":                  "仮想カメラを作成しました:",
		"  - Camera %d (%dx%d @ %d FPS)":            "  - カメラ %d (%dx%d @ %d FPS)",
		"Generating frames for %d seconds...":       "%d 秒間フレームを生成中...",
		"Error on camera %d: %v":                    "カメラ %d のエラー: %v",
		"Test complete!":                            "テストが完了しました",
		"  Camera %d: %d frames generated":          "  カメラ %d: %d フレーム生成",

		"Recordings in %s:":                            "%s の録画:",
		"  No recordings found!":                       "  録画が見つかりません",
		"File name of the recording is required":       "録画のファイル名が必要です",
		"Loading video: %s":                            "動画を読み込み中: %s",
		"Restart at the end of the file until stopped": "停止するまでファイルの最後で最初から再生",
		"Video duration: %.2f seconds":                 "動画の長さ: %.2f 秒",
		"Playing: %.0f%% (frame %d/%d)":                "再生中: %.0f%% (フレーム %d/%d)",
		"Playback finished: %d frames":                 "再生が完了しました: %d フレーム",
		"Simulating stereo cameras for %d seconds...":  "%d 秒間ステレオカメラをシミュレーション中...",
		"Simulation finished: %d frame pairs":          "シミュレーション完了: %d フレームペア",
	})
}
