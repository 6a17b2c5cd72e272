package int

import (
	"net/http"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
	"workflowpro-backend/errs"
	jwt2 "workflowpro-backend/jwt"
)

var key = []byte("test-key")

var _ = Describe("Auth", func() {
	BeforeEach(func() {
		cleanupMongo()
	})

	Describe("Signup", func() {
		Specify("happy path - both tokens are valid", func() {
			user := signupUser(0)

			rc, err := jwt2.ValidateRefreshToken(user.RefreshToken, key)
			Expect(err).To(BeNil())
			Expect(rc.UserID).To(Equal(user.UID))

			ac, err := jwt2.ValidateAccessToken(user.AccessToken, key)
			Expect(err).To(BeNil())
			Expect(ac.UserID).To(Equal(user.UID))
			Expect(ac.IsAdmin).To(BeFalse())
		})

		Specify("sad path - duplicate email", func() {
			signupUser(0)

			resp := doJSON(http.MethodPost, "/api/auth/signup", "", map[string]string{
				"email":    "test0@test.test",
				"password": "testtest",
				"name":     "test0",
			})
			Expect(resp.StatusCode).To(Equal(http.StatusConflict))
			Expect(apiError(resp)).To(MatchBackendError(errs.ErrAlreadyExists))
		})

		Specify("sad path - bad email format", func() {
			resp := doJSON(http.MethodPost, "/api/auth/signup", "", map[string]string{
				"email":    "not-an-email",
				"password": "testtest",
				"name":     "test",
			})
			Expect(resp.StatusCode).To(Equal(http.StatusBadRequest))
			Expect(apiError(resp)).To(MatchBackendError(errs.ErrEmailAddressFormat))
		})
	})

	Describe("Login", func() {
		BeforeEach(func() {
			signupUser(0)
		})

		Specify("happy path", func() {
			resp := doJSON(http.MethodPost, "/api/auth/login", "", map[string]string{
				"email":    "test0@test.test",
				"password": "testtest",
			})
			defer resp.Body.Close()
			Expect(resp.StatusCode).To(Equal(http.StatusOK))

			res := struct {
				AccessToken  string `json:"accessToken"`
				RefreshToken string `json:"refreshToken"`
			}{}
			decodeInto(resp, &res)
			Expect(res.AccessToken).NotTo(BeEmpty())
			Expect(res.RefreshToken).NotTo(BeEmpty())
		})

		Specify("sad path - wrong password", func() {
			resp := doJSON(http.MethodPost, "/api/auth/login", "", map[string]string{
				"email":    "test0@test.test",
				"password": "wrong",
			})
			Expect(resp.StatusCode).To(Equal(http.StatusUnauthorized))
			Expect(apiError(resp)).To(MatchBackendError(errs.ErrInvalidEmailOrPassword))
		})

		Specify("sad path - unknown email does not reveal which part failed", func() {
			resp := doJSON(http.MethodPost, "/api/auth/login", "", map[string]string{
				"email":    "unknown@test.test",
				"password": "testtest",
			})
			Expect(resp.StatusCode).To(Equal(http.StatusUnauthorized))
			Expect(apiError(resp)).To(MatchBackendError(errs.ErrInvalidEmailOrPassword))
		})
	})

	Describe("Refresh", func() {
		Specify("happy path - new access token from refresh token", func() {
			user := signupUser(0)

			resp := doJSON(http.MethodPost, "/api/auth/refresh", "", map[string]string{
				"token": user.RefreshToken,
			})
			defer resp.Body.Close()
			Expect(resp.StatusCode).To(Equal(http.StatusOK))

			res := struct {
				Token string `json:"token"`
			}{}
			decodeInto(resp, &res)

			claims, err := jwt2.ValidateAccessToken(res.Token, key)
			Expect(err).To(BeNil())
			Expect(claims.UserID).To(Equal(user.UID))
		})
	})

	Describe("Me", func() {
		Specify("bearer token maps to uid, email, name", func() {
			user := signupUser(0)

			res := struct {
				UID   string `json:"uid"`
				Email string `json:"email"`
				Name  string `json:"name"`
			}{}
			user.GetInto("/api/auth/me", &res)

			Expect(res.UID).To(Equal(user.UID))
			Expect(res.Email).To(Equal("test0@test.test"))
			Expect(res.Name).To(Equal("test0"))
		})

		Specify("sad path - no token", func() {
			resp := doJSON(http.MethodGet, "/api/auth/me", "", nil)
			Expect(resp.StatusCode).To(Equal(http.StatusUnauthorized))
			resp.Body.Close()
		})
	})
})
