package patient_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/vetclinic/internal/apperr"
	"github.com/MrJamesThe3rd/vetclinic/internal/counter"
	"github.com/MrJamesThe3rd/vetclinic/internal/patient"
)

func TestFormatID(t *testing.T) {
	assert.Equal(t, "PaCPC-10000", patient.FormatID(10000))
	assert.Equal(t, "PaCPC-00042", patient.FormatID(42))

	n, ok := patient.ParseID("PaCPC-00042")
	assert.True(t, ok)
	assert.Equal(t, int64(42), n)

	_, ok = patient.ParseID("PaCPC-42")
	assert.False(t, ok)

	_, ok = patient.ParseID("DOG-1")
	assert.False(t, ok)
}

func TestService_Create(t *testing.T) {
	type testCase struct {
		name      string
		params    patient.CreateParams
		setupMock func(repo *patient.MockRepository, seq *patient.MockSequencer)
		wantID    string
		wantKind  apperr.Kind
		wantErr   bool
	}

	tests := []testCase{
		{
			name:   "Success",
			params: patient.CreateParams{Name: " Bruno ", OwnerName: "Asha Rao", Type: "Canine", Phone: "98765 43210"},
			setupMock: func(repo *patient.MockRepository, seq *patient.MockSequencer) {
				seq.EXPECT().Next(gomock.Any(), counter.KeyPatient).Return(int64(10000), nil)
				repo.EXPECT().
					CreatePatient(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, p *patient.Patient) error {
						assert.Equal(t, "Bruno", p.Name)
						assert.Equal(t, "+919876543210", p.Phone)
						return nil
					})
			},
			wantID: "PaCPC-10000",
		},
		{
			name:     "BlankName",
			params:   patient.CreateParams{Name: "  ", OwnerName: "Asha Rao"},
			wantKind: apperr.KindValidation,
			wantErr:  true,
		},
		{
			name:     "MissingOwner",
			params:   patient.CreateParams{Name: "Bruno"},
			wantKind: apperr.KindValidation,
			wantErr:  true,
		},
		{
			name:   "CounterError",
			params: patient.CreateParams{Name: "Bruno", OwnerName: "Asha Rao"},
			setupMock: func(_ *patient.MockRepository, seq *patient.MockSequencer) {
				seq.EXPECT().Next(gomock.Any(), counter.KeyPatient).Return(int64(0), errors.New("db down"))
			},
			wantKind: apperr.KindInternal,
			wantErr:  true,
		},
		{
			name:   "RepoError",
			params: patient.CreateParams{Name: "Bruno", OwnerName: "Asha Rao"},
			setupMock: func(repo *patient.MockRepository, seq *patient.MockSequencer) {
				seq.EXPECT().Next(gomock.Any(), counter.KeyPatient).Return(int64(10001), nil)
				repo.EXPECT().CreatePatient(gomock.Any(), gomock.Any()).Return(errors.New("insert failed"))
			},
			wantKind: apperr.KindInternal,
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)

			repo := patient.NewMockRepository(ctrl)
			seq := patient.NewMockSequencer(ctrl)

			if tt.setupMock != nil {
				tt.setupMock(repo, seq)
			}

			svc := patient.NewService(repo, seq, "IN")
			got, err := svc.Create(context.Background(), tt.params)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, got)
				assert.Equal(t, tt.wantKind, apperr.KindOf(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantID, got.ID)
		})
	}
}

func TestService_UpdateKeepsUnspecifiedFields(t *testing.T) {
	ctrl := gomock.NewController(t)

	repo := patient.NewMockRepository(ctrl)
	stored := &patient.Patient{
		ID:        "PaCPC-10000",
		Name:      "Bruno",
		OwnerName: "Asha Rao",
		Type:      "Canine",
		Breed:     "Labrador",
		Email:     "asha@example.com",
	}

	repo.EXPECT().GetPatient(gomock.Any(), "PaCPC-10000").Return(stored, nil)
	repo.EXPECT().
		UpdatePatient(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, p *patient.Patient) error {
			assert.Equal(t, "Bruno", p.Name)
			assert.Equal(t, "Labrador", p.Breed)
			assert.Equal(t, "asha@example.com", p.Email)
			assert.Equal(t, "32kg", p.Weight)
			return nil
		})

	svc := patient.NewService(repo, patient.NewMockSequencer(ctrl), "IN")

	got, err := svc.Update(context.Background(), "PaCPC-10000", patient.UpdateParams{Weight: new("32kg")})
	require.NoError(t, err)
	assert.Equal(t, "Asha Rao", got.OwnerName)
	assert.Equal(t, "32kg", got.Weight)
}

func TestService_UpdateValidation(t *testing.T) {
	ctrl := gomock.NewController(t)

	svc := patient.NewService(patient.NewMockRepository(ctrl), patient.NewMockSequencer(ctrl), "IN")

	_, err := svc.Update(context.Background(), "PaCPC-10000", patient.UpdateParams{Name: new(" ")})
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	_, err = svc.Update(context.Background(), "PaCPC-10000", patient.UpdateParams{OwnerName: new("")})
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestService_UpdateNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)

	repo := patient.NewMockRepository(ctrl)
	repo.EXPECT().GetPatient(gomock.Any(), "PaCPC-99999").Return(nil, patient.ErrNotFound)

	svc := patient.NewService(repo, patient.NewMockSequencer(ctrl), "IN")

	_, err := svc.Update(context.Background(), "PaCPC-99999", patient.UpdateParams{Name: new("Rex")})
	assert.ErrorIs(t, err, patient.ErrNotFound)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestService_ImportSyncsCounter(t *testing.T) {
	ctrl := gomock.NewController(t)

	repo := patient.NewMockRepository(ctrl)
	seq := patient.NewMockSequencer(ctrl)

	patients := []*patient.Patient{
		{ID: "PaCPC-00007", Name: "Kitty", OwnerName: "Ravi"},
		{ID: "PaCPC-10420", Name: "Max", OwnerName: "Meera"},
		{ID: "legacy", Name: "Tom", OwnerName: "Jerry"},
	}

	repo.EXPECT().ImportPatients(gomock.Any(), patients).Return(2, nil)
	seq.EXPECT().Ensure(gomock.Any(), counter.KeyPatient, int64(10421)).Return(nil)

	svc := patient.NewService(repo, seq, "IN")

	n, err := svc.Import(context.Background(), patients)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestService_ImportEmpty(t *testing.T) {
	ctrl := gomock.NewController(t)

	svc := patient.NewService(patient.NewMockRepository(ctrl), patient.NewMockSequencer(ctrl), "IN")

	n, err := svc.Import(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, n)
}
