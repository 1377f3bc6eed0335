package gateway

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/nikitosikvn1/intelligent-image-analyzer/internal/apperrors"
	"github.com/nikitosikvn1/intelligent-image-analyzer/internal/broker"
	"github.com/nikitosikvn1/intelligent-image-analyzer/internal/dto"
	"github.com/nikitosikvn1/intelligent-image-analyzer/internal/metrics"
	"github.com/nikitosikvn1/intelligent-image-analyzer/internal/ratelimit"
	"github.com/nikitosikvn1/intelligent-image-analyzer/internal/vision"
)

// maxUploadBytes bounds a multipart image upload held in memory.
const maxUploadBytes = 32 << 20

// Gateway is the HTTP edge: it validates input, forwards identity commands
// over the broker, and fans image requests out to the vision service.
type Gateway struct {
	identity broker.IdentityClient
	vision   vision.Captioner
	limiter  *ratelimit.Limiter
}

func New(identity broker.IdentityClient, captioner vision.Captioner, limiter *ratelimit.Limiter) *Gateway {
	return &Gateway{
		identity: identity,
		vision:   captioner,
		limiter:  limiter,
	}
}

// Mount assembles the router with the shared middleware chain.
func (g *Gateway) Mount() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(Metrics())
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/health", g.healthCheckHandler)
	r.Get("/metrics", metrics.Handler().ServeHTTP)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/signup", g.signUpHandler)
		r.Post("/signin", g.signInHandler)
		r.Post("/refresh", g.refreshHandler)
		r.Post("/verify", g.verifyUserHandler)
		r.Get("/verify", g.verifyUserHandler)
	})

	r.Route("/vision", func(r chi.Router) {
		r.Use(AdmissionGuard(g.identity, g.limiter))
		r.Post("/process-image", g.processImageHandler)
	})

	return r
}

func (g *Gateway) healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, dto.StatusResponse{Status: "ok", Message: "gateway is up"})
}

// signUpHandler handles user registration.
func (g *Gateway) signUpHandler(w http.ResponseWriter, r *http.Request) {
	var req dto.SignUpRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, apperrors.NewValidation("Invalid request body"))
		return
	}

	req.Firstname = sanitizeInput(req.Firstname, 50, false)
	req.Lastname = sanitizeInput(req.Lastname, 50, false)
	req.Email = sanitizeEmail(req.Email, 255)
	// Passwords keep special characters; only trim and limit length.
	req.Password = sanitizeInput(req.Password, 128, true)

	if appErr := validateRequest(&req); appErr != nil {
		writeErrorResponse(w, appErr)
		return
	}

	body, appErr := g.identity.Call(r.Context(), broker.CommandSignUp, req)
	if appErr != nil {
		writeErrorResponse(w, appErr)
		return
	}

	metrics.RecordSignUp()
	writeRaw(w, http.StatusCreated, body)
}

// signInHandler exchanges credentials for a token pair.
func (g *Gateway) signInHandler(w http.ResponseWriter, r *http.Request) {
	var req dto.SignInRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, apperrors.NewValidation("Invalid request body"))
		return
	}

	req.Email = sanitizeEmail(req.Email, 255)
	req.Password = sanitizeInput(req.Password, 128, true)

	if appErr := validateRequest(&req); appErr != nil {
		writeErrorResponse(w, appErr)
		return
	}

	body, appErr := g.identity.Call(r.Context(), broker.CommandSignIn, req)
	if appErr != nil {
		writeErrorResponse(w, appErr)
		return
	}

	metrics.RecordSignIn()
	writeRaw(w, http.StatusOK, body)
}

// refreshHandler rotates a token pair. Token-flow failures come back as
// {is_valid:false, message} with 200, not as transport errors.
func (g *Gateway) refreshHandler(w http.ResponseWriter, r *http.Request) {
	var req dto.TokenRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, apperrors.NewValidation("Invalid request body"))
		return
	}

	if appErr := validateRequest(&req); appErr != nil {
		writeErrorResponse(w, appErr)
		return
	}

	body, appErr := g.identity.Call(r.Context(), broker.CommandRefresh, req)
	if appErr != nil {
		writeErrorResponse(w, appErr)
		return
	}

	metrics.RecordRefresh()
	writeRaw(w, http.StatusOK, body)
}

// verifyUserHandler consumes an emailed verification key. Served for both
// POST and GET so the mailed link stays clickable; repeat clicks are
// answered with the already-verified message.
func (g *Gateway) verifyUserHandler(w http.ResponseWriter, r *http.Request) {
	req := dto.VerifyUserRequest{Key: r.URL.Query().Get("key")}

	if req.Key == "" && r.Method == http.MethodPost {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeErrorResponse(w, apperrors.NewValidation("Invalid request body"))
			return
		}
	}

	if appErr := validateRequest(&req); appErr != nil {
		writeErrorResponse(w, appErr)
		return
	}

	body, appErr := g.identity.Call(r.Context(), broker.CommandVerify, req)
	if appErr != nil {
		writeErrorResponse(w, appErr)
		return
	}

	metrics.RecordVerification()
	writeRaw(w, http.StatusOK, body)
}

// processImageHandler accepts a multipart upload of one or more images under
// the `image` field plus an optional `model` field. A single file goes over
// the unary RPC; multiple files go over the batch stream and descriptions
// come back in upload order.
func (g *Gateway) processImageHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeErrorResponse(w, apperrors.NewValidation("Invalid multipart form"))
		return
	}
	defer r.MultipartForm.RemoveAll()

	model := r.FormValue("model")
	headers := r.MultipartForm.File["image"]
	if len(headers) == 0 {
		writeErrorResponse(w, apperrors.NewValidation("No image files provided"))
		return
	}

	images := make([][]byte, 0, len(headers))
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			writeErrorResponse(w, apperrors.NewValidation("Failed to read uploaded file"))
			return
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			writeErrorResponse(w, apperrors.NewValidation("Failed to read uploaded file"))
			return
		}
		images = append(images, data)
	}

	if len(images) == 1 {
		description, appErr := g.vision.Process(r.Context(), model, images[0])
		if appErr != nil {
			writeErrorResponse(w, appErr)
			return
		}
		metrics.RecordImageRequest("unary")
		writeJSON(w, http.StatusOK, dto.DescriptionResponse{Description: description})
		return
	}

	descriptions, appErr := g.vision.ProcessBatch(r.Context(), model, images)
	if appErr != nil {
		writeErrorResponse(w, appErr)
		return
	}
	metrics.RecordImageRequest("batch")
	writeJSON(w, http.StatusOK, dto.DescriptionsResponse{Descriptions: descriptions})
}

// writeRaw forwards an already-encoded broker reply body.
func writeRaw(w http.ResponseWriter, status int, body json.RawMessage) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(body)
}
