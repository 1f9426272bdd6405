// Package i declares the contract HTTP controllers satisfy to be
// mounted by the router.
package i

import "github.com/gin-gonic/gin"

// Controller registers its routes on two groups: the public group,
// reachable without credentials, and the protected group, which sits
// behind bearer authorization.
type Controller interface {
	RegisterPublic(*gin.RouterGroup)
	RegisterProtected(*gin.RouterGroup)
}
