package logger

import "github.com/ideamans/go-l10n"

func init() {
	l10n.Register("de", l10n.LexiconMap{
		// Session level messages (info)
		"Starting recording from %s": "Starte Aufnahme von %s",
		"Recording finished":         "Aufnahme beendet",
		"Recording error: %v":        "Aufnahmefehler: %v",
		"Stop requested by %s":       "Stopp angefordert von %s",

		// Per-tick messages
		"%s frame skipped: %v":      "%s Frame übersprungen: %v",
		"%s frame not recorded: %v": "%s Frame nicht aufgenommen: %v",

		// Camera
		"Bayer sensor detected (%s)":                                 "Bayer-Sensor erkannt (%s)",
		"Probe failed, assuming standard camera: %v":                 "Erkennung fehlgeschlagen, verwende Standardkamera: %v",
		"Bayer capture failed, falling back to standard capture: %v": "Bayer-Aufnahme fehlgeschlagen, verwende Standardaufnahme: %v",
		"Strategy %s failed: %v":                                     "Strategie %s fehlgeschlagen: %v",
		"Opened with strategy %s":                                    "Geöffnet mit Strategie %s",
		"Could not set resolution %s, scaling from %dx%d":            "Auflösung %s nicht einstellbar, skaliere von %dx%d",

		// Recorder
		"Recording to %s with %s":                "Nehme auf nach %s mit %s",
		"Recording saved: %s (%d frames, %.2fs)": "Aufnahme gespeichert: %s (%d Frames, %.2fs)",
		"Encoder backend %s failed: %v":          "Encoder-Backend %s fehlgeschlagen: %v",
		"Falling back to %s encoder":             "Weiche auf %s-Encoder aus",
		"Finalize failed: %v":                    "Abschluss fehlgeschlagen: %v",
		"Could not stop %s source: %v":           "Quelle %s konnte nicht gestoppt werden: %v",
		"Could not write session summary: %v":    "Sitzungszusammenfassung konnte nicht geschrieben werden: %v",

		// Playback
		"Only one recording found, using it for both cameras": "Nur eine Aufnahme gefunden, verwende sie für beide Kameras",
		"Left camera: %s":                         "Linke Kamera: %s",
		"Right camera: %s":                        "Rechte Kamera: %s",
		"Decoder backend %s failed: %v":           "Decoder-Backend %s fehlgeschlagen: %v",
		"Could not read container info of %s: %v": "Containerinformationen von %s nicht lesbar: %v",

		// Preview and status
		"Snapshot saved: %s":            "Vorschaubild gespeichert: %s",
		"Snapshot failed: %v":           "Vorschaubild fehlgeschlagen: %v",
		"Status server listening on %s": "Statusserver lauscht auf %s",
		"Status server stopped: %v":     "Statusserver beendet: %v",
	})

	l10n.Register("ja", l10n.LexiconMap{
		"Starting recording from %s": "%s から録画を開始します",
		"Recording finished":         "録画が完了しました",
		"Recording error: %v":        "録画エラー: %v",
		"Stop requested by %s":       "%s から停止が要求されました",

		"%s frame skipped: %v":      "%s フレームをスキップしました: %v",
		"%s frame not recorded: %v": "%s フレームを記録できませんでした: %v",

		"Bayer sensor detected (%s)":                                 "Bayerセンサーを検出しました (%s)",
		"Probe failed, assuming standard camera: %v":                 "検出に失敗しました。標準カメラとして扱います: %v",
		"Bayer capture failed, falling back to standard capture: %v": "Bayerキャプチャに失敗しました。標準キャプチャを使用します: %v",
		"Strategy %s failed: %v":                                     "方式 %s に失敗しました: %v",
		"Opened with strategy %s":                                    "方式 %s で開きました",
		"Could not set resolution %s, scaling from %dx%d":            "解像度 %s を設定できません。%dx%d から拡大縮小します",

		"Recording to %s with %s":                "%s に %s で録画中",
		"Recording saved: %s (%d frames, %.2fs)": "録画を保存しました: %s (%d フレーム, %.2f秒)",
		"Encoder backend %s failed: %v":          "エンコーダ %s に失敗しました: %v",
		"Falling back to %s encoder":             "%s エンコーダにフォールバックします",
		"Finalize failed: %v":                    "ファイナライズに失敗しました: %v",
		"Could not stop %s source: %v":           "%s ソースを停止できませんでした: %v",
		"Could not write session summary: %v":    "セッション概要を書き込めませんでした: %v",

		"Only one recording found, using it for both cameras": "録画が1つしかないため、両方のカメラに使用します",
		"Left camera: %s":                         "左カメラ: %s",
		"Right camera: %s":                        "右カメラ: %s",
		"Decoder backend %s failed: %v":           "デコーダ %s に失敗しました: %v",
		"Could not read container info of %s: %v": "%s のコンテナ情報を読み取れません: %v",

		"Snapshot saved: %s":            "スナップショットを保存しました: %s",
		"Snapshot failed: %v":           "スナップショットに失敗しました: %v",
		"Status server listening on %s": "ステータスサーバーが %s で待機中",
		"Status server stopped: %v":     "ステータスサーバーが停止しました: %v",
	})
}
