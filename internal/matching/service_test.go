package matching_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/vetclinic/internal/apperr"
	"github.com/MrJamesThe3rd/vetclinic/internal/matching"
)

func TestService_Normalize(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		setupMock func(m *matching.MockRepository)
		want      string
		wantErr   bool
	}{
		{
			name: "Mapped",
			raw:  " GooglePay ",
			setupMock: func(m *matching.MockRepository) {
				m.EXPECT().FindMatch(gomock.Any(), "GooglePay").Return("UPI", nil)
			},
			want: "UPI",
		},
		{
			name: "Unmapped",
			raw:  "Barter ",
			setupMock: func(m *matching.MockRepository) {
				m.EXPECT().FindMatch(gomock.Any(), "Barter").Return("", nil)
			},
			want: "Barter",
		},
		{
			name: "Blank",
			raw:  "  ",
			want: "",
		},
		{
			name: "RepoError",
			raw:  "cash",
			setupMock: func(m *matching.MockRepository) {
				m.EXPECT().FindMatch(gomock.Any(), "cash").Return("", errors.New("db down"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)

			repo := matching.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			got, err := matching.NewService(repo).Normalize(context.Background(), tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestService_Learn(t *testing.T) {
	ctrl := gomock.NewController(t)

	repo := matching.NewMockRepository(ctrl)
	repo.EXPECT().SaveMapping(gomock.Any(), matching.Mapping{RawPattern: "phonepe", Method: "UPI"}).Return(nil)

	svc := matching.NewService(repo)

	require.NoError(t, svc.Learn(context.Background(), " PhonePe ", "UPI"))

	err := svc.Learn(context.Background(), "", "UPI")
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	err = svc.Learn(context.Background(), "gpay", " ")
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}
