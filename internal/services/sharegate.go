package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/janwerner/fotobox/internal/models"
	"github.com/janwerner/fotobox/internal/store"
)

// Session grants live for 7 days regardless of the share's own expiry.
const sessionTTL = 7 * 24 * time.Hour

// LookupBy selects which gallery identifier a password attempt is keyed on.
type LookupBy string

const (
	ByGalleryID LookupBy = "galleryId"
	ByShareID   LookupBy = "shareId"
)

// SessionGrant is the proof-of-password artifact issued after a successful
// check. The cookie value is a signed token, never the raw password.
type SessionGrant struct {
	CookieName string
	Token      string
	Gallery    *models.GalleryRecord
}

// Cookie builds the session cookie for the grant.
func (g *SessionGrant) Cookie(secure bool) *fiber.Cookie {
	return &fiber.Cookie{
		Name:     g.CookieName,
		Value:    g.Token,
		Path:     "/",
		MaxAge:   int(sessionTTL.Seconds()),
		HTTPOnly: true,
		Secure:   secure,
		SameSite: fiber.CookieSameSiteStrictMode,
	}
}

// ShareGate validates gallery passwords and issues and re-checks session
// grants. A gallery is Locked until a password attempt succeeds; the grant
// then stands in for the password for the session lifetime, but is verified
// against the live gallery state on every use so revoking the share or
// changing its password cuts existing sessions off.
type ShareGate struct {
	store  store.MetadataStore
	secret []byte
	now    func() time.Time
}

func NewShareGate(s store.MetadataStore, secret []byte) *ShareGate {
	return &ShareGate{store: s, secret: secret, now: time.Now}
}

// Validate checks a password attempt against the gallery looked up by the
// given key and returns a session grant on success.
func (g *ShareGate) Validate(ctx context.Context, id, password string, by LookupBy) (*SessionGrant, error) {
	gal, err := g.lookup(ctx, id, by)
	if err != nil {
		return nil, err
	}

	expected := gal.Password
	if by == ByShareID {
		if !gal.ShareEnabled {
			return nil, ErrShareDisabled
		}
		if gal.ShareExpired(g.now()) {
			return nil, ErrShareExpired
		}
		expected = gal.SharePassword
	}

	if password != expected {
		return nil, ErrInvalidPassword
	}

	token, err := g.signGrant(id, password, by)
	if err != nil {
		return nil, fmt.Errorf("failed to sign session grant: %w", err)
	}

	return &SessionGrant{CookieName: cookieName(id, by), Token: token, Gallery: gal}, nil
}

// CheckAccess verifies a previously issued share-session token against the
// current state of the share. It fails when the token is malformed or for a
// different share, when the share has since been disabled or expired, or
// when the share password changed after the grant was issued.
func (g *ShareGate) CheckAccess(ctx context.Context, shareID, token string) (*models.GalleryRecord, error) {
	gal, err := g.lookup(ctx, shareID, ByShareID)
	if err != nil {
		return nil, err
	}
	if !gal.ShareEnabled {
		return nil, ErrShareDisabled
	}
	if gal.ShareExpired(g.now()) {
		return nil, ErrShareExpired
	}
	if gal.SharePassword == "" {
		return gal, nil
	}

	claims, err := g.parseGrant(token)
	if err != nil {
		return nil, ErrInvalidSession
	}
	if claims["scope"] != string(ByShareID) || claims["sub"] != shareID {
		return nil, ErrInvalidSession
	}
	fingerprint, _ := claims["pwd"].(string)
	if bcrypt.CompareHashAndPassword([]byte(fingerprint), []byte(gal.SharePassword)) != nil {
		return nil, ErrInvalidSession
	}
	return gal, nil
}

func (g *ShareGate) lookup(ctx context.Context, id string, by LookupBy) (*models.GalleryRecord, error) {
	var (
		gal *models.GalleryRecord
		err error
	)
	if by == ByShareID {
		gal, err = g.store.GalleryByShareID(ctx, id)
	} else {
		gal, err = g.store.GalleryByID(ctx, id)
	}
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrGalleryNotFound
		}
		return nil, &UpstreamError{Err: err}
	}
	return gal, nil
}

func (g *ShareGate) signGrant(id, password string, by LookupBy) (string, error) {
	fingerprint, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	now := g.now()
	claims := jwt.MapClaims{
		"scope": string(by),
		"sub":   id,
		"pwd":   string(fingerprint),
		"iat":   now.Unix(),
		"exp":   now.Add(sessionTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(g.secret)
}

func (g *ShareGate) parseGrant(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return g.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidSession
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidSession
	}
	return claims, nil
}

func cookieName(id string, by LookupBy) string {
	if by == ByShareID {
		return "share_password_" + id
	}
	return "gallery_password_" + id
}
