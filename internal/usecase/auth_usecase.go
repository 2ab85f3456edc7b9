package usecase

import (
	"context"
	"strings"
	"sync"

	"vidtube/internal/entity"
	"vidtube/internal/repo/persistent"
	"vidtube/pkg/apperr"
	"vidtube/pkg/jwt"
	"vidtube/pkg/logger"
	"vidtube/pkg/s3"

	"golang.org/x/crypto/bcrypt"
)

type RegisterInput struct {
	FullName   string
	Email      string
	Username   string
	Password   string
	AvatarPath string
	CoverPath  string
}

type AuthUseCase interface {
	Register(ctx context.Context, in RegisterInput) (*entity.User, error)
	Login(username, email, password string) (*entity.User, string, string, error)
	Logout(userID string) error
	Refresh(refreshToken string) (string, string, error)
	ChangePassword(userID, oldPassword, newPassword string) error
	GetUser(userID string) (*entity.User, error)
	UpdateAccount(userID, fullName, email string) (*entity.User, error)
	UpdateAvatar(ctx context.Context, userID, localPath string) (*entity.User, error)
	UpdateCover(ctx context.Context, userID, localPath string) (*entity.User, error)
	ChannelProfile(username, viewerID string) (*entity.ChannelProfile, error)
	WatchHistory(userID string, page, limit int) ([]*entity.WatchHistoryEntry, int64, error)
}

type authUseCase struct {
	userRepo   persistent.UserRepository
	subRepo    persistent.SubscriptionRepository
	jwtService *jwt.Service
	media      MediaGateway
	logger     *logger.Logger

	// Serializes avatar/cover replacement per user so two concurrent
	// updates cannot leak or double-delete a remote asset.
	assetLocks sync.Map
}

func NewAuthUseCase(
	userRepo persistent.UserRepository,
	subRepo persistent.SubscriptionRepository,
	jwtService *jwt.Service,
	media MediaGateway,
	logger *logger.Logger,
) AuthUseCase {
	return &authUseCase{
		userRepo:   userRepo,
		subRepo:    subRepo,
		jwtService: jwtService,
		media:      media,
		logger:     logger,
	}
}

func (uc *authUseCase) Register(ctx context.Context, in RegisterInput) (*entity.User, error) {
	fullName := strings.TrimSpace(in.FullName)
	email := strings.TrimSpace(in.Email)
	username := strings.ToLower(strings.TrimSpace(in.Username))
	if fullName == "" || email == "" || username == "" || strings.TrimSpace(in.Password) == "" {
		return nil, apperr.New(apperr.Validation, "fullName, email, username and password are required")
	}
	if in.AvatarPath == "" {
		return nil, apperr.New(apperr.Validation, "avatar file is required")
	}

	_, err := uc.userRepo.GetByUsernameOrEmail(username, email)
	if err == nil {
		return nil, apperr.New(apperr.Conflict, "user with username or email already exists")
	}
	if !isRecordNotFound(err) {
		return nil, apperr.Wrap(apperr.Persistence, "failed to check existing user", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		uc.logger.Error("Failed to hash password: %v", err)
		return nil, apperr.Wrap(apperr.Persistence, "failed to process registration", err)
	}

	avatarRef, err := uc.media.UploadLocalFile(ctx, in.AvatarPath, "avatars")
	if err != nil {
		uc.logger.Error("Failed to upload avatar: %v", err)
		return nil, apperr.Wrap(apperr.Upload, "failed to upload avatar", err)
	}

	var coverRef s3.AssetReference
	if in.CoverPath != "" {
		coverRef, err = uc.media.UploadLocalFile(ctx, in.CoverPath, "covers")
		if err != nil {
			uc.logger.Error("Failed to upload cover image: %v", err)
			uc.discardAsset(ctx, avatarRef)
			return nil, apperr.Wrap(apperr.Upload, "failed to upload cover image", err)
		}
	}

	user := &entity.User{
		FullName:   fullName,
		Email:      email,
		Username:   username,
		Password:   string(hashedPassword),
		Avatar:     assetToEntity(avatarRef),
		CoverImage: assetToEntity(coverRef),
	}
	if err := uc.userRepo.Create(user); err != nil {
		uc.discardAsset(ctx, avatarRef)
		uc.discardAsset(ctx, coverRef)
		if isDuplicate(err) {
			return nil, apperr.New(apperr.Conflict, "user with username or email already exists")
		}
		uc.logger.Error("Failed to create user: %v", err)
		return nil, apperr.Wrap(apperr.Persistence, "failed to create user", err)
	}

	return sanitize(user), nil
}

func (uc *authUseCase) Login(username, email, password string) (*entity.User, string, string, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	email = strings.TrimSpace(email)
	if username == "" && email == "" {
		return nil, "", "", apperr.New(apperr.Validation, "username or email is required")
	}

	user, err := uc.userRepo.GetByUsernameOrEmail(username, email)
	if err != nil {
		if isRecordNotFound(err) {
			return nil, "", "", apperr.New(apperr.NotFound, "user not found")
		}
		return nil, "", "", apperr.Wrap(apperr.Persistence, "failed to look up user", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, "", "", apperr.New(apperr.Unauthenticated, "invalid user credentials")
	}

	accessToken, refreshToken, err := uc.issueTokens(user.ID)
	if err != nil {
		return nil, "", "", err
	}

	return sanitize(user), accessToken, refreshToken, nil
}

func (uc *authUseCase) Logout(userID string) error {
	if err := uc.userRepo.ClearRefreshToken(userID); err != nil {
		uc.logger.Error("Failed to clear refresh token: %v", err)
		return apperr.Wrap(apperr.Persistence, "failed to log out", err)
	}
	return nil
}

// Refresh exchanges a refresh token for a new pair. The stored-token
// compare-and-swap makes replay of a rotated-out token fail even when
// it has not yet expired, and lets exactly one of two concurrent
// refreshes win.
func (uc *authUseCase) Refresh(refreshToken string) (string, string, error) {
	if strings.TrimSpace(refreshToken) == "" {
		return "", "", apperr.New(apperr.Unauthenticated, "unauthorized request")
	}

	claims, err := uc.jwtService.ValidateRefreshToken(refreshToken)
	if err != nil {
		return "", "", apperr.Wrap(apperr.Unauthenticated, "invalid refresh token", err)
	}

	newAccess, err := uc.jwtService.GenerateAccessToken(claims.UserID)
	if err != nil {
		return "", "", apperr.Wrap(apperr.Persistence, "failed to generate token", err)
	}
	newRefresh, err := uc.jwtService.GenerateRefreshToken(claims.UserID)
	if err != nil {
		return "", "", apperr.Wrap(apperr.Persistence, "failed to generate token", err)
	}

	rotated, err := uc.userRepo.RotateRefreshToken(claims.UserID, refreshToken, newRefresh)
	if err != nil {
		return "", "", apperr.Wrap(apperr.Persistence, "failed to rotate refresh token", err)
	}
	if !rotated {
		return "", "", apperr.New(apperr.Unauthenticated, "refresh token expired or already used")
	}

	return newAccess, newRefresh, nil
}

func (uc *authUseCase) ChangePassword(userID, oldPassword, newPassword string) error {
	if strings.TrimSpace(oldPassword) == "" || strings.TrimSpace(newPassword) == "" {
		return apperr.New(apperr.Validation, "both old and new passwords are required")
	}
	if oldPassword == newPassword {
		return apperr.New(apperr.Validation, "new password must differ from the old one")
	}

	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		if isRecordNotFound(err) {
			return apperr.New(apperr.NotFound, "user not found")
		}
		return apperr.Wrap(apperr.Persistence, "failed to look up user", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(oldPassword)); err != nil {
		return apperr.New(apperr.Validation, "old password is incorrect")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return apperr.Wrap(apperr.Persistence, "failed to process new password", err)
	}
	if err := uc.userRepo.UpdatePassword(userID, string(hashed)); err != nil {
		return apperr.Wrap(apperr.Persistence, "failed to change password", err)
	}
	return nil
}

func (uc *authUseCase) GetUser(userID string) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		if isRecordNotFound(err) {
			return nil, apperr.New(apperr.NotFound, "user not found")
		}
		return nil, apperr.Wrap(apperr.Persistence, "failed to look up user", err)
	}
	return sanitize(user), nil
}

func (uc *authUseCase) UpdateAccount(userID, fullName, email string) (*entity.User, error) {
	fullName = strings.TrimSpace(fullName)
	email = strings.TrimSpace(email)
	if fullName == "" && email == "" {
		return nil, apperr.New(apperr.Validation, "at least one of fullName or email is required")
	}

	current, err := uc.userRepo.GetByID(userID)
	if err != nil {
		if isRecordNotFound(err) {
			return nil, apperr.New(apperr.NotFound, "user not found")
		}
		return nil, apperr.Wrap(apperr.Persistence, "failed to look up user", err)
	}

	fields := map[string]interface{}{}
	if fullName != "" {
		fields["full_name"] = fullName
	}
	if email != "" && email != current.Email {
		if _, err := uc.userRepo.GetByEmail(email); err == nil {
			return nil, apperr.New(apperr.Conflict, "user with this email already exists")
		} else if !isRecordNotFound(err) {
			return nil, apperr.Wrap(apperr.Persistence, "failed to check email", err)
		}
		fields["email"] = email
	}

	if len(fields) > 0 {
		if err := uc.userRepo.UpdateAccount(userID, fields); err != nil {
			return nil, apperr.Wrap(apperr.Persistence, "failed to update account", err)
		}
	}
	return uc.GetUser(userID)
}

func (uc *authUseCase) UpdateAvatar(ctx context.Context, userID, localPath string) (*entity.User, error) {
	return uc.replaceAsset(ctx, userID, localPath, "avatars",
		func(u *entity.User) entity.Asset { return u.Avatar },
		uc.userRepo.UpdateAvatar,
	)
}

func (uc *authUseCase) UpdateCover(ctx context.Context, userID, localPath string) (*entity.User, error) {
	return uc.replaceAsset(ctx, userID, localPath, "covers",
		func(u *entity.User) entity.Asset { return u.CoverImage },
		uc.userRepo.UpdateCover,
	)
}

// replaceAsset uploads the new object, swaps the stored reference, and
// only then removes the old object best-effort. A failed old-delete
// leaves the record pointing at valid new content, so it is logged and
// not surfaced.
func (uc *authUseCase) replaceAsset(
	ctx context.Context,
	userID, localPath, keyPrefix string,
	currentAsset func(*entity.User) entity.Asset,
	persistAsset func(string, entity.Asset) error,
) (*entity.User, error) {
	if localPath == "" {
		return nil, apperr.New(apperr.Validation, "file is missing")
	}

	unlock := uc.lockAssets(userID)
	defer unlock()

	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		if isRecordNotFound(err) {
			return nil, apperr.New(apperr.NotFound, "user not found")
		}
		return nil, apperr.Wrap(apperr.Persistence, "failed to look up user", err)
	}

	newRef, err := uc.media.UploadLocalFile(ctx, localPath, keyPrefix+"/"+userID)
	if err != nil {
		uc.logger.Error("Failed to upload %s for user %s: %v", keyPrefix, userID, err)
		return nil, apperr.Wrap(apperr.Upload, "failed to upload file", err)
	}

	if err := persistAsset(userID, assetToEntity(newRef)); err != nil {
		uc.discardAsset(ctx, newRef)
		return nil, apperr.Wrap(apperr.Persistence, "failed to update user", err)
	}

	if old := currentAsset(user); old.Key != "" {
		if _, err := uc.media.DeleteFile(ctx, entityToAsset(old)); err != nil {
			uc.logger.Warn("Failed to delete replaced asset %s: %v", old.Key, err)
		}
	}

	return uc.GetUser(userID)
}

func (uc *authUseCase) ChannelProfile(username, viewerID string) (*entity.ChannelProfile, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	if username == "" {
		return nil, apperr.New(apperr.Validation, "username is required")
	}

	user, err := uc.userRepo.GetByUsername(username)
	if err != nil {
		if isRecordNotFound(err) {
			return nil, apperr.New(apperr.NotFound, "channel does not exist")
		}
		return nil, apperr.Wrap(apperr.Persistence, "failed to look up channel", err)
	}

	subscribers, err := uc.subRepo.CountByChannel(user.ID)
	if err != nil {
		return nil, apperr.Wrap(apperr.Persistence, "failed to count subscribers", err)
	}
	subscribedTo, err := uc.subRepo.CountBySubscriber(user.ID)
	if err != nil {
		return nil, apperr.Wrap(apperr.Persistence, "failed to count subscriptions", err)
	}

	isSubscribed := false
	if viewerID != "" {
		if _, err := uc.subRepo.Get(viewerID, user.ID); err == nil {
			isSubscribed = true
		} else if !isRecordNotFound(err) {
			return nil, apperr.Wrap(apperr.Persistence, "failed to check subscription", err)
		}
	}

	return &entity.ChannelProfile{
		User:              *sanitize(user),
		SubscribersCount:  subscribers,
		SubscribedToCount: subscribedTo,
		IsSubscribed:      isSubscribed,
	}, nil
}

func (uc *authUseCase) WatchHistory(userID string, page, limit int) ([]*entity.WatchHistoryEntry, int64, error) {
	limit, offset := normalizePage(page, limit)
	entries, total, err := uc.userRepo.WatchHistory(userID, limit, offset)
	if err != nil {
		return nil, 0, apperr.Wrap(apperr.Persistence, "failed to fetch watch history", err)
	}
	return entries, total, nil
}

func (uc *authUseCase) issueTokens(userID string) (string, string, error) {
	accessToken, err := uc.jwtService.GenerateAccessToken(userID)
	if err != nil {
		uc.logger.Error("Failed to generate access token: %v", err)
		return "", "", apperr.Wrap(apperr.Persistence, "failed to generate token", err)
	}
	refreshToken, err := uc.jwtService.GenerateRefreshToken(userID)
	if err != nil {
		uc.logger.Error("Failed to generate refresh token: %v", err)
		return "", "", apperr.Wrap(apperr.Persistence, "failed to generate token", err)
	}

	if err := uc.userRepo.SetRefreshToken(userID, refreshToken); err != nil {
		uc.logger.Error("Failed to persist refresh token: %v", err)
		return "", "", apperr.Wrap(apperr.Persistence, "failed to persist session", err)
	}
	return accessToken, refreshToken, nil
}

func (uc *authUseCase) lockAssets(userID string) func() {
	v, _ := uc.assetLocks.LoadOrStore(userID, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

func (uc *authUseCase) discardAsset(ctx context.Context, ref s3.AssetReference) {
	if ref.Key == "" {
		return
	}
	if _, err := uc.media.DeleteFile(ctx, ref); err != nil {
		uc.logger.Warn("Failed to discard orphaned asset %s: %v", ref.Key, err)
	}
}

func sanitize(user *entity.User) *entity.User {
	clean := *user
	clean.Password = ""
	clean.RefreshToken = ""
	return &clean
}

func assetToEntity(ref s3.AssetReference) entity.Asset {
	return entity.Asset{URL: ref.URL, Key: ref.Key, Kind: string(ref.Kind)}
}

func entityToAsset(a entity.Asset) s3.AssetReference {
	return s3.AssetReference{URL: a.URL, Key: a.Key, Kind: s3.AssetKind(a.Kind)}
}
