package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/telescolawrence/coke-crypto-rewards/internal/app/models"
)

func TestRegisterAndResolveKey(t *testing.T) {
	s := newTestServices(t)

	resp, err := s.accessKeys.RegisterKey(&models.AccessKeyCreateRequest{Address: ownerAddr})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(resp.Key, "rk_"))
	assert.Equal(t, ownerAddr, resp.AccessKey.Address)

	address, err := s.accessKeys.ResolveAddress(resp.Key)
	require.NoError(t, err)
	assert.Equal(t, ownerAddr, address)
}

func TestResolveUnknownKey(t *testing.T) {
	s := newTestServices(t)

	_, err := s.accessKeys.ResolveAddress("rk_nonexistent")
	require.Error(t, err)
}

func TestRevokeKey(t *testing.T) {
	s := newTestServices(t)

	resp, err := s.accessKeys.RegisterKey(&models.AccessKeyCreateRequest{Address: ownerAddr})
	require.NoError(t, err)

	require.NoError(t, s.accessKeys.RevokeKey(ownerAddr, resp.AccessKey.ID.String()))

	_, err = s.accessKeys.ResolveAddress(resp.Key)
	require.Error(t, err)
}

func TestRevokeKeyRequiresOwner(t *testing.T) {
	s := newTestServices(t)

	resp, err := s.accessKeys.RegisterKey(&models.AccessKeyCreateRequest{Address: ownerAddr})
	require.NoError(t, err)

	err = s.accessKeys.RevokeKey(strangerAddr, resp.AccessKey.ID.String())
	require.Error(t, err)

	// still resolvable
	_, err = s.accessKeys.ResolveAddress(resp.Key)
	require.NoError(t, err)
}
