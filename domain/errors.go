package domain

import "errors"

var (
	// 認証・認可エラー
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidPassword    = errors.New("invalid password")
	ErrSessionNotFound    = errors.New("session not found")
	ErrSessionExpired     = errors.New("session expired")

	// ユーザー関連エラー
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
	ErrInvalidUserContext = errors.New("invalid user context")

	// フィード・購読関連エラー
	ErrFeedNotFound          = errors.New("feed not found")
	ErrFeedAlreadyExists     = errors.New("feed already exists")
	ErrFeedInvalid           = errors.New("feed is invalid")
	ErrSubscriptionNotFound  = errors.New("subscription not found")
	ErrAlreadySubscribed     = errors.New("already subscribed")
	ErrNoSubscriptions       = errors.New("no subscriptions found")

	// 記事関連エラー
	ErrArticleNotFound      = errors.New("article not found")
	ErrArticleAlreadyExists = errors.New("article already exists")
	ErrArticleInFuture      = errors.New("article published date is in the future")

	// フォルダ関連エラー
	ErrFolderNotFound     = errors.New("folder not found")
	ErrFolderDepthLimit   = errors.New("folder depth limit exceeded")
	ErrFolderChildLimit   = errors.New("folder child limit exceeded")
	ErrFolderCycle        = errors.New("folder move would create a cycle")
	ErrFolderNameConflict = errors.New("folder name already exists under parent")

	// タグ関連エラー
	ErrTagNotFound     = errors.New("tag not found")
	ErrTagNameConflict = errors.New("tag name already exists")
	ErrTagNotOwned     = errors.New("tag is not owned by user")

	// OPML 関連エラー
	ErrImportNotFound = errors.New("import not found")
	ErrExportExpired  = errors.New("export file has expired")

	// ジョブ関連エラー
	ErrJobNotFound = errors.New("job not found")
)
