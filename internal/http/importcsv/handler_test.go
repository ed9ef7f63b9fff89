package importcsv

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/vetclinic/internal/importer"
	"github.com/MrJamesThe3rd/vetclinic/internal/patient"
)

type fixture struct {
	router   http.Handler
	patients *importer.MockPatientImporter
}

func setup(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	f := fixture{patients: importer.NewMockPatientImporter(ctrl)}

	svc := importer.NewService(f.patients, importer.NewMockInvoiceImporter(ctrl), importer.NewMockMethodNormalizer(ctrl))

	router := chi.NewRouter()
	router.Route("/api/import", NewHandler(svc).Routes)
	f.router = router

	return f
}

func upload(t *testing.T, h http.Handler, fields map[string]string, file string) *httptest.ResponseRecorder {
	t.Helper()

	var body bytes.Buffer

	mw := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}

	if file != "" {
		fw, err := mw.CreateFormFile("file", "export.csv")
		require.NoError(t, err)

		_, err = fw.Write([]byte(file))
		require.NoError(t, err)
	}

	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/import", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	return rec
}

func TestHandler_ImportPatients(t *testing.T) {
	f := setup(t)

	f.patients.EXPECT().Import(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, patients []*patient.Patient) (int, error) {
			require.Len(t, patients, 2)
			assert.Equal(t, "PaCPC-00007", patients[0].ID)

			return 1, nil
		})

	rec := upload(t, f.router, map[string]string{"kind": "patients"},
		"patient_id,name,owner_name\n7,Bruno,Asha Rao\n8,Kitty,Ravi\nabc,Ghost,Nobody\n")

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var env struct {
		Success bool           `json:"success"`
		Data    importResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))

	assert.True(t, env.Success)
	assert.Equal(t, importer.KindPatients, env.Data.Kind)
	assert.Equal(t, "UTF-8", env.Data.Charset)
	assert.Equal(t, 2, env.Data.Rows)
	assert.Equal(t, 1, env.Data.Inserted)
	assert.Equal(t, 1, env.Data.Skipped)
	require.Len(t, env.Data.Rejected, 1)
	assert.Equal(t, 4, env.Data.Rejected[0].Row)
}

func TestHandler_Import_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		fields map[string]string
		file   string
		want   string
	}{
		{name: "bad kind", fields: map[string]string{"kind": "visits"}, file: "a,b\n", want: "kind must be one of"},
		{name: "no file", fields: map[string]string{"kind": "patients"}, want: "file field is required"},
		{name: "no header", fields: map[string]string{"kind": "invoices"}, file: "foo,bar\n1,2\n", want: "no invoices header found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := setup(t)

			rec := upload(t, f.router, tt.fields, tt.file)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.want)
			assert.Contains(t, rec.Body.String(), `"success":false`)
		})
	}
}
