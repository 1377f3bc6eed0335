package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nikitosikvn1/intelligent-image-analyzer/internal/apperrors"
	"github.com/nikitosikvn1/intelligent-image-analyzer/internal/broker"
	"github.com/nikitosikvn1/intelligent-image-analyzer/internal/dto"
	"github.com/nikitosikvn1/intelligent-image-analyzer/internal/ratelimit"
)

/*
Gateway Test Cases:

1. TestGateway_SignUp
   - Valid body forwards to the broker and returns 201 with the reply
   - Malformed JSON and weak passwords are rejected with 400 before any RPC
   - Conflict reply maps to 409

2. TestGateway_SignIn
   - Valid credentials return the token pair body

3. TestGateway_Refresh_TokenFlow
   - Expired token comes back as 200 {is_valid:false, message}

4. TestGateway_Verify
   - GET with ?key= works for the clickable link; bad key is 400

5. TestGateway_AdmissionGuard_Anonymous
   - 3 anonymous requests pass, the 4th is 429 with Retry-After

6. TestGateway_AdmissionGuard_Token
   - Valid token bypasses the budget; invalid token is 401; broker outage is 503

7. TestGateway_ProcessImage
   - No files is 400; one file goes unary; several files go batch in order
*/

// stubIdentityClient is a function-field stub for the broker RPC surface.
type stubIdentityClient struct {
	callFunc func(ctx context.Context, cmd broker.Command, payload any) (json.RawMessage, *apperrors.AppError)
	calls    []broker.Command
}

func (s *stubIdentityClient) Call(ctx context.Context, cmd broker.Command, payload any) (json.RawMessage, *apperrors.AppError) {
	s.calls = append(s.calls, cmd)
	if s.callFunc != nil {
		return s.callFunc(ctx, cmd, payload)
	}
	return json.RawMessage(`{}`), nil
}

// stubCaptioner is a function-field stub for the vision surface.
type stubCaptioner struct {
	processFunc func(ctx context.Context, model string, image []byte) (string, *apperrors.AppError)
	batchFunc   func(ctx context.Context, model string, images [][]byte) ([]string, *apperrors.AppError)
}

func (s *stubCaptioner) Process(ctx context.Context, model string, image []byte) (string, *apperrors.AppError) {
	if s.processFunc != nil {
		return s.processFunc(ctx, model, image)
	}
	return "a caption", nil
}

func (s *stubCaptioner) ProcessBatch(ctx context.Context, model string, images [][]byte) ([]string, *apperrors.AppError) {
	if s.batchFunc != nil {
		return s.batchFunc(ctx, model, images)
	}
	out := make([]string, len(images))
	for i := range images {
		out[i] = fmt.Sprintf("caption %d", i)
	}
	return out, nil
}

func newTestGateway(identity *stubIdentityClient, captioner *stubCaptioner) http.Handler {
	if identity == nil {
		identity = &stubIdentityClient{}
	}
	if captioner == nil {
		captioner = &stubCaptioner{}
	}
	return New(identity, captioner, ratelimit.New(3, time.Hour)).Mount()
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestGateway_SignUp(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		identity := &stubIdentityClient{
			callFunc: func(ctx context.Context, cmd broker.Command, payload any) (json.RawMessage, *apperrors.AppError) {
				require.Equal(t, broker.CommandSignUp, cmd)
				req, ok := payload.(dto.SignUpRequest)
				require.True(t, ok)
				// Email reaches the RPC trimmed but with its case intact:
				// it is the identity key, so no folding is allowed.
				assert.Equal(t, "ADA@Example.com", req.Email)
				return json.RawMessage(`{"status":"success","message":"User has been registered; verify via email"}`), nil
			},
		}
		h := newTestGateway(identity, nil)

		rr := doJSON(t, h, http.MethodPost, "/auth/signup", dto.SignUpRequest{
			Firstname: "Ada",
			Lastname:  "Lovelace",
			Email:     " ADA@Example.com ",
			Password:  "Str0ng!Pass",
		})

		assert.Equal(t, http.StatusCreated, rr.Code)
		var body dto.StatusResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
		assert.Equal(t, "success", body.Status)
	})

	t.Run("malformed json", func(t *testing.T) {
		identity := &stubIdentityClient{}
		h := newTestGateway(identity, nil)

		req := httptest.NewRequest(http.MethodPost, "/auth/signup", strings.NewReader("{broken"))
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Empty(t, identity.calls)
	})

	t.Run("weak password", func(t *testing.T) {
		identity := &stubIdentityClient{}
		h := newTestGateway(identity, nil)

		rr := doJSON(t, h, http.MethodPost, "/auth/signup", dto.SignUpRequest{
			Firstname: "Ada",
			Lastname:  "Lovelace",
			Email:     "ada@example.com",
			Password:  "alllowercase1",
		})

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "Password")
		assert.Empty(t, identity.calls)
	})

	t.Run("conflict", func(t *testing.T) {
		identity := &stubIdentityClient{
			callFunc: func(ctx context.Context, cmd broker.Command, payload any) (json.RawMessage, *apperrors.AppError) {
				return nil, apperrors.FromCode(apperrors.ErrCodeConflict, "User with such email already exists")
			},
		}
		h := newTestGateway(identity, nil)

		rr := doJSON(t, h, http.MethodPost, "/auth/signup", dto.SignUpRequest{
			Firstname: "Ada",
			Lastname:  "Lovelace",
			Email:     "ada@example.com",
			Password:  "Str0ng!Pass",
		})

		assert.Equal(t, http.StatusConflict, rr.Code)
		var body dto.ErrorResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
		assert.Equal(t, "CONFLICT", body.Code)
	})
}

func TestGateway_SignIn(t *testing.T) {
	identity := &stubIdentityClient{
		callFunc: func(ctx context.Context, cmd broker.Command, payload any) (json.RawMessage, *apperrors.AppError) {
			require.Equal(t, broker.CommandSignIn, cmd)
			return json.RawMessage(`{"access_token":"aaa","refresh_token":"rrr"}`), nil
		},
	}
	h := newTestGateway(identity, nil)

	rr := doJSON(t, h, http.MethodPost, "/auth/signin", dto.SignInRequest{
		Email:    "ada@example.com",
		Password: "Str0ng!Pass",
	})

	assert.Equal(t, http.StatusOK, rr.Code)
	var body dto.TokenPairResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "aaa", body.AccessToken)
	assert.Equal(t, "rrr", body.RefreshToken)
}

func TestGateway_Refresh_TokenFlow(t *testing.T) {
	identity := &stubIdentityClient{
		callFunc: func(ctx context.Context, cmd broker.Command, payload any) (json.RawMessage, *apperrors.AppError) {
			return nil, apperrors.FromCode(apperrors.ErrCodeTokenExpired, "Token expired")
		},
	}
	h := newTestGateway(identity, nil)

	rr := doJSON(t, h, http.MethodPost, "/auth/refresh", dto.TokenRequest{Token: "stale"})

	// Token-flow failures are data, not transport errors.
	assert.Equal(t, http.StatusOK, rr.Code)
	var body dto.TokenStateResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.False(t, body.IsValid)
	assert.Equal(t, "Token expired", body.Message)
}

func TestGateway_Verify(t *testing.T) {
	t.Run("clickable link", func(t *testing.T) {
		key := uuid.NewString()
		identity := &stubIdentityClient{
			callFunc: func(ctx context.Context, cmd broker.Command, payload any) (json.RawMessage, *apperrors.AppError) {
				require.Equal(t, broker.CommandVerify, cmd)
				req, ok := payload.(dto.VerifyUserRequest)
				require.True(t, ok)
				assert.Equal(t, key, req.Key)
				return json.RawMessage(`{"status":"success","message":"User has been verified"}`), nil
			},
		}
		h := newTestGateway(identity, nil)

		req := httptest.NewRequest(http.MethodGet, "/auth/verify?key="+key, nil)
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "verified")
	})

	t.Run("bad key", func(t *testing.T) {
		identity := &stubIdentityClient{}
		h := newTestGateway(identity, nil)

		req := httptest.NewRequest(http.MethodGet, "/auth/verify?key=not-a-uuid", nil)
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Empty(t, identity.calls)
	})
}

func multipartBody(t *testing.T, model string, images ...[]byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if model != "" {
		require.NoError(t, w.WriteField("model", model))
	}
	for i, img := range images {
		fw, err := w.CreateFormFile("image", fmt.Sprintf("img-%d.jpg", i))
		require.NoError(t, err)
		_, err = fw.Write(img)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func doMultipart(t *testing.T, h http.Handler, model string, images ...[]byte) *httptest.ResponseRecorder {
	t.Helper()
	body, contentType := multipartBody(t, model, images...)
	req := httptest.NewRequest(http.MethodPost, "/vision/process-image", body)
	req.Header.Set("Content-Type", contentType)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestGateway_AdmissionGuard_Anonymous(t *testing.T) {
	h := newTestGateway(nil, nil)

	for i := 0; i < 3; i++ {
		rr := doMultipart(t, h, "", []byte("img"))
		assert.Equal(t, http.StatusOK, rr.Code, "request %d should pass", i+1)
	}

	rr := doMultipart(t, h, "", []byte("img"))
	assert.Equal(t, http.StatusTooManyRequests, rr.Code)
	assert.NotEmpty(t, rr.Header().Get("Retry-After"))
}

func TestGateway_AdmissionGuard_Token(t *testing.T) {
	t.Run("valid token bypasses budget", func(t *testing.T) {
		identity := &stubIdentityClient{
			callFunc: func(ctx context.Context, cmd broker.Command, payload any) (json.RawMessage, *apperrors.AppError) {
				require.Equal(t, broker.CommandValidate, cmd)
				return json.RawMessage(`{"is_valid":true,"is_verified":true,"message":"Token is valid"}`), nil
			},
		}
		h := newTestGateway(identity, nil)

		// Well past the anonymous budget.
		for i := 0; i < 5; i++ {
			body, contentType := multipartBody(t, "", []byte("img"))
			req := httptest.NewRequest(http.MethodPost, "/vision/process-image", body)
			req.Header.Set("Content-Type", contentType)
			req.Header.Set("token", "live-access-token")
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, req)
			assert.Equal(t, http.StatusOK, rr.Code)
		}
	})

	t.Run("invalid token", func(t *testing.T) {
		identity := &stubIdentityClient{
			callFunc: func(ctx context.Context, cmd broker.Command, payload any) (json.RawMessage, *apperrors.AppError) {
				return json.RawMessage(`{"is_valid":false,"message":"Token expired"}`), nil
			},
		}
		h := newTestGateway(identity, nil)

		body, contentType := multipartBody(t, "", []byte("img"))
		req := httptest.NewRequest(http.MethodPost, "/vision/process-image", body)
		req.Header.Set("Content-Type", contentType)
		req.Header.Set("token", "stale-token")
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Contains(t, rr.Body.String(), "Token expired")
	})

	t.Run("identity outage", func(t *testing.T) {
		identity := &stubIdentityClient{
			callFunc: func(ctx context.Context, cmd broker.Command, payload any) (json.RawMessage, *apperrors.AppError) {
				return nil, apperrors.NewUpstream("identity service timed out")
			},
		}
		h := newTestGateway(identity, nil)

		body, contentType := multipartBody(t, "", []byte("img"))
		req := httptest.NewRequest(http.MethodPost, "/vision/process-image", body)
		req.Header.Set("Content-Type", contentType)
		req.Header.Set("token", "some-token")
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	})
}

func TestGateway_ProcessImage(t *testing.T) {
	t.Run("no files", func(t *testing.T) {
		h := newTestGateway(nil, nil)
		rr := doMultipart(t, h, "blip")
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "No image files")
	})

	t.Run("single file unary", func(t *testing.T) {
		captioner := &stubCaptioner{
			processFunc: func(ctx context.Context, model string, image []byte) (string, *apperrors.AppError) {
				assert.Equal(t, "blip", model)
				assert.Equal(t, []byte("one"), image)
				return "a cat on a mat", nil
			},
		}
		h := newTestGateway(nil, captioner)

		rr := doMultipart(t, h, "blip", []byte("one"))
		assert.Equal(t, http.StatusOK, rr.Code)

		var body dto.DescriptionResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
		assert.Equal(t, "a cat on a mat", body.Description)
	})

	t.Run("multiple files batch in order", func(t *testing.T) {
		captioner := &stubCaptioner{
			batchFunc: func(ctx context.Context, model string, images [][]byte) ([]string, *apperrors.AppError) {
				require.Len(t, images, 3)
				assert.Equal(t, [][]byte{[]byte("a"), []byte("b"), []byte("c")}, images)
				return []string{"first", "second", "third"}, nil
			},
		}
		h := newTestGateway(nil, captioner)

		rr := doMultipart(t, h, "blip_quantized", []byte("a"), []byte("b"), []byte("c"))
		assert.Equal(t, http.StatusOK, rr.Code)

		var body dto.DescriptionsResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
		assert.Equal(t, []string{"first", "second", "third"}, body.Descriptions)
	})

	t.Run("vision outage", func(t *testing.T) {
		captioner := &stubCaptioner{
			processFunc: func(ctx context.Context, model string, image []byte) (string, *apperrors.AppError) {
				return "", apperrors.NewUpstream("vision service unavailable")
			},
		}
		h := newTestGateway(nil, captioner)

		rr := doMultipart(t, h, "", []byte("img"))
		assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	})
}
