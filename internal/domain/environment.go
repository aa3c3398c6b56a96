package domain

// Environment identifies the deployment the process is running in.
type Environment string

const (
	EnvLocalDev  Environment = "localdev"
	EnvDev       Environment = "dev"
	EnvTest      Environment = "test"
	EnvMinishift Environment = "minishift"
	EnvProd      Environment = "prod"
)

// DebugEnabled reports whether development-only tooling may run.
func (e Environment) DebugEnabled() bool {
	switch e {
	case EnvLocalDev, EnvDev, EnvTest, EnvMinishift:
		return true
	}
	return false
}
