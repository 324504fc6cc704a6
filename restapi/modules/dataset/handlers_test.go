package dataset

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/suite"

	"github.com/tzleads/contact-backend/config"
	"github.com/tzleads/contact-backend/internal/services"
	"github.com/tzleads/contact-backend/sources"
	"github.com/tzleads/contact-backend/store"
)

type LoadHandlerSuite struct {
	suite.Suite
	app *fiber.App
}

func (s *LoadHandlerSuite) SetupTest() {
	cfg := config.Default()
	cfg.EnabledSources = nil
	finder := services.NewContactFinder(cfg, store.New(), sources.NewRegistry(cfg))

	s.app = fiber.New()
	s.app.Post("/load", Load(finder))
}

func TestLoadHandlerSuite(t *testing.T) {
	suite.Run(t, new(LoadHandlerSuite))
}

func (s *LoadHandlerSuite) post(body string) (int, string) {
	req := httptest.NewRequest("POST", "/load", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.app.Test(req)
	s.Require().NoError(err)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)
	return resp.StatusCode, string(data)
}

// TestLoadMissingFileField verifies an empty file path is a bad request.
func (s *LoadHandlerSuite) TestLoadMissingFileField() {
	code, _ := s.post(`{}`)
	s.Equal(fiber.StatusBadRequest, code)

	code, _ = s.post(`{"file":"   "}`)
	s.Equal(fiber.StatusBadRequest, code)
}

// TestLoadNonexistentFile verifies a missing file is rejected before the
// dataset is touched.
func (s *LoadHandlerSuite) TestLoadNonexistentFile() {
	path := filepath.Join(s.T().TempDir(), "nope.csv")

	code, body := s.post(`{"file":"` + path + `"}`)
	s.Equal(fiber.StatusUnprocessableEntity, code)
	s.Contains(body, "not found")
}

// TestLoadDataset verifies a valid CSV loads and reports counts.
func (s *LoadHandlerSuite) TestLoadDataset() {
	path := filepath.Join(s.T().TempDir(), "contacts.csv")
	csvData := "Name,Phone/Mobile\nTusiime Schools,0754 123 456\n"
	s.Require().NoError(os.WriteFile(path, []byte(csvData), 0o600))

	code, body := s.post(`{"file":"` + path + `"}`)
	s.Require().Equal(fiber.StatusOK, code)

	var parsed struct {
		Success bool `json:"success"`
		Loaded  int  `json:"loaded"`
	}
	s.Require().NoError(json.Unmarshal([]byte(body), &parsed))
	s.True(parsed.Success)
	s.Equal(1, parsed.Loaded)
}
