/*
Package security groups the credential handling of the distill service.

The only subpackage is secrets, which resolves the completion API key from
the environment and, optionally, from a directory of secret files:

	fp, err := secrets.NewFileProvider("/run/secrets", true)
	if err != nil {
		return err
	}

	manager := secrets.NewManager([]secrets.SecretProvider{
		fp,
		secrets.NewEnvProvider(""),
	}, secrets.CacheConfig{TTL: 5 * time.Minute})

	apiKey, err := manager.GetSecret(ctx, "openai-api-key")

A missing key is not a startup error. Handlers resolve it per request and
answer 503 while it is absent.
*/
package security
