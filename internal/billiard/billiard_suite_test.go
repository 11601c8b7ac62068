package billiard

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestBilliard(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Billiard Suite")
}
