package category_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/contas/internal/category"
	categoryhttp "github.com/MrJamesThe3rd/contas/internal/http/category"
)

func serve(repo *category.MockRepository, method, target, body string) *httptest.ResponseRecorder {
	r := chi.NewRouter()
	r.Route("/categories", categoryhttp.NewHandler(category.NewService(repo)).Routes)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(method, target, strings.NewReader(body)))

	return rec
}

func TestHandler(t *testing.T) {
	id := uuid.New()
	income := category.TypeIncome

	type testCase struct {
		name       string
		method     string
		target     string
		body       string
		setupMock  func(m *category.MockRepository)
		wantStatus int
	}

	tests := []testCase{
		{
			name:   "Create",
			method: http.MethodPost,
			target: "/categories/",
			body:   `{"name":"Serviços","type":"income"}`,
			setupMock: func(m *category.MockRepository) {
				m.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
			},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "CreateUnknownType",
			method:     http.MethodPost,
			target:     "/categories/",
			body:       `{"name":"Serviços","type":"asset"}`,
			setupMock:  func(m *category.MockRepository) {},
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:   "ListByType",
			method: http.MethodGet,
			target: "/categories/?type=income",
			setupMock: func(m *category.MockRepository) {
				m.EXPECT().List(gomock.Any(), &income).Return(nil, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:   "UpdateMissing",
			method: http.MethodPut,
			target: "/categories/" + id.String(),
			body:   `{"name":"Outros"}`,
			setupMock: func(m *category.MockRepository) {
				m.EXPECT().Get(gomock.Any(), id).Return(nil, category.ErrNotFound)
			},
			wantStatus: http.StatusNotFound,
		},
		{
			name:   "DeleteInUse",
			method: http.MethodDelete,
			target: "/categories/" + id.String(),
			setupMock: func(m *category.MockRepository) {
				m.EXPECT().Get(gomock.Any(), id).Return(&category.Category{ID: id}, nil)
				m.EXPECT().CountEntries(gomock.Any(), id).Return(1, nil)
			},
			wantStatus: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := category.NewMockRepository(ctrl)
			tt.setupMock(repo)

			rec := serve(repo, tt.method, tt.target, tt.body)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
