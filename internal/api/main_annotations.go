// @title           bookmarks API
// @version         1.0
// @description     Bookmark storage service. Authenticate with the shared API token.
// @BasePath        /api
// @securityDefinitions.apikey BearerToken
// @in              header
// @name            Authorization
// @description     Type "Bearer" followed by a space and the API token.
package api
