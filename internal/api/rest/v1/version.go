package v1

// BasePath is the URL prefix under which every v1 route is mounted.
const BasePath = "/api/v1"
