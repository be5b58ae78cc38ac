package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/verateam/vera-bot/csvio"
	"github.com/verateam/vera-bot/utils"
)

func respondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, gin.H{"status": "success", "data": data})
}

func respondError(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"status": "error", "message": message})
}

func (s *Server) health(c *gin.Context) {
	respondOK(c, gin.H{"alive": true})
}

type loginRequest struct {
	Password string `json:"password" binding:"required"`
}

func (s *Server) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "password is required")
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(s.cfg.AdminPasswordHash), []byte(req.Password)); err != nil {
		respondError(c, http.StatusUnauthorized, "wrong password")
		return
	}
	claims := jwt.MapClaims{
		"sub": "admin",
		"exp": time.Now().Add(24 * time.Hour).Unix(),
		"iat": time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		utils.ErrorLogger.Errorf("sign token: %v", err)
		respondError(c, http.StatusInternalServerError, "could not issue token")
		return
	}
	respondOK(c, gin.H{"token": signed})
}

func (s *Server) listBookings(c *gin.Context) {
	bookings, err := s.store.ListBookings()
	if err != nil {
		utils.ErrorLogger.Errorf("list bookings: %v", err)
		respondError(c, http.StatusInternalServerError, "could not load bookings")
		return
	}
	respondOK(c, bookings)
}

func (s *Server) futureBookings(c *gin.Context) {
	bookings, err := s.store.FutureBookings(time.Now())
	if err != nil {
		utils.ErrorLogger.Errorf("future bookings: %v", err)
		respondError(c, http.StatusInternalServerError, "could not load bookings")
		return
	}
	respondOK(c, bookings)
}

func (s *Server) listUsers(c *gin.Context) {
	users, err := s.store.ListUsers(200)
	if err != nil {
		utils.ErrorLogger.Errorf("list users: %v", err)
		respondError(c, http.StatusInternalServerError, "could not load users")
		return
	}
	respondOK(c, users)
}

func (s *Server) exportCSV(c *gin.Context) {
	kind := csvio.Kind(c.Param("kind"))
	switch kind {
	case csvio.KindBookings, csvio.KindStaff, csvio.KindMenu:
	default:
		respondError(c, http.StatusBadRequest, "unknown export kind")
		return
	}
	data, filename, err := csvio.Export(s.store, kind)
	if err != nil {
		utils.ErrorLogger.Errorf("export %s: %v", kind, err)
		respondError(c, http.StatusInternalServerError, "export failed")
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", data)
}
