package app

import (
	"testing"

	"github.com/stretchr/testify/assert"

	_ "github.com/odyssey-erp/supplydesk/testing"
)

func TestInTestModeFollowsHelperPackage(t *testing.T) {
	assert.True(t, InTestMode())
}
