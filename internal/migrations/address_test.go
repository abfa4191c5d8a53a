package migrations

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfiguration_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Configuration
		wantErr bool
	}{
		{
			name: "built-in addresses",
			cfg:  DefaultConfiguration(),
		},
		{
			name: "upper case prefix",
			cfg:  Configuration{GatewayAddress: "0XE432150CCE91C13A887F7D836923D5597ADD8E31", GasServiceAddress: GasServiceAddress},
		},
		{
			name:    "gateway one character short",
			cfg:     Configuration{GatewayAddress: "0xe432150cce91c13a887f7D836923d5597adD8E3", GasServiceAddress: GasServiceAddress},
			wantErr: true,
		},
		{
			name:    "gas service one character long",
			cfg:     Configuration{GatewayAddress: GatewayAddress, GasServiceAddress: "0xbE406F0189A0B4cf3A05C286473D23791Dd44Cc61"},
			wantErr: true,
		},
		{
			name:    "missing prefix",
			cfg:     Configuration{GatewayAddress: "e432150cce91c13a887f7D836923d5597adD8E31", GasServiceAddress: GasServiceAddress},
			wantErr: true,
		},
		{
			name:    "non hex characters",
			cfg:     Configuration{GatewayAddress: GatewayAddress, GasServiceAddress: "0xzE406F0189A0B4cf3A05C286473D23791Dd44Cc6"},
			wantErr: true,
		},
		{
			name:    "empty",
			cfg:     Configuration{},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidAddress)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestConfiguration_ValidateDoesNotRewrite(t *testing.T) {
	cfg := Configuration{GatewayAddress: "0xe432150cce91c13a887f7D836923d5597adD8E3", GasServiceAddress: GasServiceAddress}

	require.Error(t, cfg.Validate())
	assert.Equal(t, "0xe432150cce91c13a887f7D836923d5597adD8E3", cfg.GatewayAddress)
}

func TestKnownDeployments(t *testing.T) {
	assert.Equal(t, "0x752Be5CE15994EE59eB172c2132b569731C1b148", KnownDeployments["linea"])
	assert.Equal(t, "0x4EF3469C8F4c87Bd16e3E85E489dE4845b776E8c", KnownDeployments["optimism"])
}
